package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	m, ok := LookupMode("golang")
	require.True(t, ok)
	assert.Equal(t, ".go", m.Suffix)

	_, ok = LookupMode("cobol")
	assert.False(t, ok)

	th, ok := LookupTheme("monokai")
	require.True(t, ok)
	assert.True(t, th.Internal)

	_, ok = LookupTheme("neon")
	assert.False(t, ok)

	_, ok = LookupMode(DefaultMode)
	assert.True(t, ok)
}

func TestRegistryCopies(t *testing.T) {
	all := Modes()
	all[0].Suffix = ".changed"
	assert.NotEqual(t, ".changed", Modes()[0].Suffix)

	themes := Themes()
	assert.Len(t, themes, 37)
}

func TestSupported(t *testing.T) {
	got := SupportedModes([]string{"python", "cobol", "json"})
	require.Len(t, got, 2)
	assert.Equal(t, "python", got[0].ID)
	assert.Equal(t, "json", got[1].ID)

	assert.Len(t, SupportedModes(nil), len(Modes()))
	assert.Empty(t, SupportedThemes([]string{"neon"}))
	assert.Len(t, SupportedThemes([]string{"xcode", "github"}), 2)
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "ace/theme/monokai", Namespace("theme", "monokai"))
	assert.Equal(t, "ace/mode/golang", Namespace("mode", "golang"))
}

func TestDefaultTitle(t *testing.T) {
	goMode, _ := LookupMode("golang")
	docker, _ := LookupMode("dockerfile")

	tests := []struct {
		name      string
		typeIndex int
		mode      Mode
		want      string
	}{
		{"first page", 0, goMode, "default.go"},
		{"second page", 1, goMode, "default 1.go"},
		{"mode default title", 0, docker, "Dockerfile"},
		{"mode default title numbered", 2, docker, "Dockerfile 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTitle(tt.typeIndex, tt.mode, "default"))
		})
	}
}

func TestFormatTitle(t *testing.T) {
	py, _ := LookupMode("python")

	tests := []struct {
		name    string
		title   string
		passive bool
		want    string
	}{
		{"empty uses default", "", false, "default.py"},
		{"passive kept", "notes", true, "notes"},
		{"no extension gets suffix", "main", false, "main.py"},
		{"trailing dot replaced", "main.", false, "main.py"},
		{"existing extension kept", "main.txt", false, "main.txt"},
		{"dotted trailing dot", "a.b.", false, "a.b.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTitle(tt.title, "default.py", py, tt.passive))
		})
	}
}

func TestModeForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "golang"},
		{"/src/app/Main.JAVA", "java"},
		{"query.sql", "sql"},
		{"build/Dockerfile", "dockerfile"},
		{".gitignore", "gitignore"},
		{"notes", "text"},
		{"archive.tar.gz", "text"},
		{"README.md", "markdown"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ModeForPath(tt.path).ID)
		})
	}
}
