// Package modes holds the language mode and theme registries.
//
// Both tables are built once at package initialization and never mutated;
// lookups return copies.
package modes

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Mode describes a language mode a page can be opened in.
type Mode struct {
	ID           string // Registry key
	Mode         string // Highlighter mode name
	Name         string // Display name
	Suffix       string // File suffix appended to titles, including the dot
	DefaultTitle string // Title used instead of "<default><suffix>", if set
}

// Theme describes an editor color theme.
type Theme struct {
	Name     string
	Internal bool // Bundled with the host engine
}

// DefaultMode is the mode used when none is given.
const DefaultMode = "text"

var modeTable = []Mode{
	{ID: "c", Mode: "c_cpp", Name: "c", Suffix: ".c"},
	{ID: "cpp", Mode: "c_cpp", Name: "cpp", Suffix: ".cpp"},
	{ID: "css", Mode: "css", Name: "css", Suffix: ".css"},
	{ID: "dockerfile", Mode: "dockerfile", Name: "dockerfile", DefaultTitle: "Dockerfile"},
	{ID: "ejs", Mode: "ejs", Name: "ejs", Suffix: ".ejs"},
	{ID: "gitignore", Mode: "gitignore", Name: "gitignore", DefaultTitle: ".gitignore"},
	{ID: "golang", Mode: "golang", Name: "golang", Suffix: ".go"},
	{ID: "html", Mode: "html", Name: "html", Suffix: ".html"},
	{ID: "java", Mode: "java", Name: "java", Suffix: ".java"},
	{ID: "javascript", Mode: "javascript", Name: "javascript", Suffix: ".js"},
	{ID: "json", Mode: "json", Name: "json", Suffix: ".json"},
	{ID: "jsx", Mode: "jsx", Name: "jsx", Suffix: ".jsx"},
	{ID: "less", Mode: "less", Name: "less", Suffix: ".less"},
	{ID: "lua", Mode: "lua", Name: "lua", Suffix: ".lua"},
	{ID: "markdown", Mode: "markdown", Name: "markdown", Suffix: ".md"},
	{ID: "mysql", Mode: "mysql", Name: "mysql", Suffix: ".sql"},
	{ID: "pgsql", Mode: "pgsql", Name: "pgsql", Suffix: ".sql"},
	{ID: "php", Mode: "php", Name: "php", Suffix: ".php"},
	{ID: "python", Mode: "python", Name: "python", Suffix: ".py"},
	{ID: "rust", Mode: "rust", Name: "rust", Suffix: ".rs"},
	{ID: "sass", Mode: "sass", Name: "sass", Suffix: ".sass"},
	{ID: "scala", Mode: "scala", Name: "scala", Suffix: ".scala"},
	{ID: "sql", Mode: "sql", Name: "sql", Suffix: ".sql"},
	{ID: "sqlserver", Mode: "sqlserver", Name: "sqlserver", Suffix: ".sql"},
	{ID: "swift", Mode: "swift", Name: "swift", Suffix: ".swift"},
	{ID: "svg", Mode: "svg", Name: "svg", Suffix: ".svg"},
	{ID: "text", Mode: "text", Name: "text", Suffix: ".txt"},
	{ID: "typescript", Mode: "typescript", Name: "typescript", Suffix: ".ts"},
	{ID: "tsx", Mode: "tsx", Name: "tsx", Suffix: ".tsx"},
	{ID: "xml", Mode: "xml", Name: "xml", Suffix: ".xml"},
	{ID: "yaml", Mode: "yaml", Name: "yaml", Suffix: ".yaml"},
}

var internalThemes = []string{
	"ambiance", "chaos", "chrome", "clouds", "clouds_midnight", "cobalt",
	"crimson_editor", "dawn", "dracula", "dreamweaver", "eclipse", "github",
	"gob", "gruvbox", "idle_fingers", "iplastic", "katzenmilch", "kr_theme",
	"kuroir", "merbivore", "merbivore_soft", "mono_industrial", "monokai",
	"pastel_on_dark", "solarized_dark", "solarized_light", "sqlserver",
	"terminal", "textmate", "tomorrow", "tomorrow_night", "tomorrow_night_blue",
	"tomorrow_night_bright", "tomorrow_night_eighties", "twilight",
	"vibrant_ink", "xcode",
}

var (
	modeIndex  = make(map[string]Mode, len(modeTable))
	fileIndex  = make(map[string]Mode, len(modeTable))
	themeTable = make([]Theme, 0, len(internalThemes))
	themeIndex = make(map[string]Theme, len(internalThemes))
)

func init() {
	for _, m := range modeTable {
		modeIndex[m.ID] = m
		key := m.Suffix
		if m.DefaultTitle != "" {
			key = m.DefaultTitle
		}
		// Several SQL dialects share .sql; the plain one wins.
		if _, taken := fileIndex[key]; !taken || "."+m.ID == key {
			fileIndex[key] = m
		}
	}
	for _, name := range internalThemes {
		th := Theme{Name: name, Internal: true}
		themeTable = append(themeTable, th)
		themeIndex[name] = th
	}
}

// LookupMode returns the mode registered under id.
func LookupMode(id string) (Mode, bool) {
	m, ok := modeIndex[id]
	return m, ok
}

// ModeForPath picks a mode from a file name: an exact default title such
// as "Dockerfile" first, then the extension. Unknown files are text.
func ModeForPath(path string) Mode {
	base := filepath.Base(path)
	if m, ok := fileIndex[base]; ok {
		return m
	}
	if m, ok := fileIndex[strings.ToLower(filepath.Ext(base))]; ok {
		return m
	}
	return modeIndex[DefaultMode]
}

// LookupTheme returns the theme registered under name.
func LookupTheme(name string) (Theme, bool) {
	th, ok := themeIndex[name]
	return th, ok
}

// Modes returns every registered mode in registry order.
func Modes() []Mode {
	out := make([]Mode, len(modeTable))
	copy(out, modeTable)
	return out
}

// Themes returns every registered theme in registry order.
func Themes() []Theme {
	out := make([]Theme, len(themeTable))
	copy(out, themeTable)
	return out
}

// SupportedModes filters ids down to registered modes, keeping order.
// A nil slice selects every mode.
func SupportedModes(ids []string) []Mode {
	if ids == nil {
		return Modes()
	}
	var out []Mode
	for _, id := range ids {
		if m, ok := modeIndex[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// SupportedThemes filters names down to registered themes, keeping order.
// A nil slice selects every theme.
func SupportedThemes(names []string) []Theme {
	if names == nil {
		return Themes()
	}
	var out []Theme
	for _, name := range names {
		if th, ok := themeIndex[name]; ok {
			out = append(out, th)
		}
	}
	return out
}

// Namespace returns the host engine path of a mode or theme, e.g.
// Namespace("theme", "monokai") is "ace/theme/monokai".
func Namespace(kind, name string) string {
	return "ace/" + kind + "/" + name
}

// DefaultTitle builds the title of a new page.
//
// The n-th page of a mode (typeIndex n, zero-based) gets " n" appended to
// its base name; the first page gets nothing. The base name is the mode's
// DefaultTitle if set, otherwise defaultName followed by the mode suffix.
func DefaultTitle(typeIndex int, m Mode, defaultName string) string {
	middle := ""
	if typeIndex != 0 {
		middle = " " + strconv.Itoa(typeIndex)
	}
	if m.DefaultTitle != "" {
		return m.DefaultTitle + middle
	}
	return defaultName + middle + m.Suffix
}

// FormatTitle normalizes a page title.
//
// An empty title falls back to defaultTitle. Titles typed by the user
// (passive == false) get the mode suffix when they have no extension, and a
// trailing dot is replaced by the suffix. Passive titles are kept as given.
func FormatTitle(title, defaultTitle string, m Mode, passive bool) string {
	if title == "" {
		return defaultTitle
	}
	if passive {
		return title
	}

	parts := strings.Split(title, ".")
	if len(parts) == 1 {
		return title + m.Suffix
	}
	if parts[len(parts)-1] == "" {
		return strings.Join(parts[:len(parts)-1], ".") + m.Suffix
	}
	return title
}
