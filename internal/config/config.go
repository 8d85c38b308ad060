package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/frostline/internal/editor/modes"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FROSTLINE_"

// Config is the complete frostline configuration.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Freeze  FreezeConfig  `toml:"freeze" yaml:"freeze"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level" validate:"loglevel"`
	Format string `toml:"format" yaml:"format" validate:"oneof=text json"`
}

// EditorConfig configures page bookkeeping.
type EditorConfig struct {
	// PageLimit is [min, max]; -1 disables a bound.
	PageLimit        []int    `toml:"page_limit" yaml:"page_limit" validate:"len=2,dive,min=-1"`
	DefaultMode      string   `toml:"default_mode" yaml:"default_mode" validate:"mode"`
	Theme            string   `toml:"theme" yaml:"theme" validate:"theme"`
	Modes            []string `toml:"modes" yaml:"modes" validate:"dive,mode"`
	Themes           []string `toml:"themes" yaml:"themes" validate:"dive,theme"`
	EnableModeChange bool     `toml:"enable_mode_change" yaml:"enable_mode_change"`
}

// FreezeConfig styles the markers of frozen rows.
type FreezeConfig struct {
	MarkerClass string `toml:"marker_class" yaml:"marker_class" validate:"required"`
	MarkerType  string `toml:"marker_type" yaml:"marker_type" validate:"oneof=fullLine screenLine text"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	Namespace string `toml:"namespace" yaml:"namespace" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Editor: EditorConfig{
			PageLimit:        []int{-1, -1},
			DefaultMode:      modes.DefaultMode,
			Theme:            "github",
			EnableModeChange: true,
		},
		Freeze: FreezeConfig{
			MarkerClass: "ace_active-line ace_readonly-line",
			MarkerType:  "fullLine",
		},
		Metrics: MetricsConfig{
			Namespace: "frostline",
		},
	}
}

// PageLimit returns the page limit as a [min, max] pair.
func (c *Config) PageLimit() [2]int {
	if len(c.Editor.PageLimit) != 2 {
		return [2]int{-1, -1}
	}
	return [2]int{c.Editor.PageLimit[0], c.Editor.PageLimit[1]}
}

// ============================================================================
// Validation
// ============================================================================

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("loglevel", validateLogLevel)
	_ = validate.RegisterValidation("mode", validateMode)
	_ = validate.RegisterValidation("theme", validateTheme)
	validate.RegisterStructValidation(validatePageLimit, EditorConfig{})
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func validateMode(fl validator.FieldLevel) bool {
	_, ok := modes.LookupMode(fl.Field().String())
	return ok
}

func validateTheme(fl validator.FieldLevel) bool {
	_, ok := modes.LookupTheme(fl.Field().String())
	return ok
}

// validatePageLimit requires min <= max when both bounds are enabled.
func validatePageLimit(sl validator.StructLevel) {
	ec := sl.Current().Interface().(EditorConfig)
	if len(ec.PageLimit) != 2 {
		return
	}
	lo, hi := ec.PageLimit[0], ec.PageLimit[1]
	if lo >= 0 && hi >= 0 && lo > hi {
		sl.ReportError(ec.PageLimit, "page_limit", "PageLimit", "ordered", "")
	}
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		out.Fields = append(out.Fields, FieldError{
			Path:  path,
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}

// ============================================================================
// Environment
// ============================================================================

// ApplyEnv overrides settings from FROSTLINE_* variables found by lookup.
//
//	FROSTLINE_LOG_LEVEL, FROSTLINE_LOG_FORMAT, FROSTLINE_THEME,
//	FROSTLINE_DEFAULT_MODE, FROSTLINE_METRICS
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "THEME"); ok {
		c.Editor.Theme = v
	}
	if v, ok := lookup(EnvPrefix + "DEFAULT_MODE"); ok {
		c.Editor.DefaultMode = v
	}
	if v, ok := lookup(EnvPrefix + "METRICS"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMETRICS: %w", EnvPrefix, err)
		}
		c.Metrics.Enabled = enabled
	}
	return nil
}
