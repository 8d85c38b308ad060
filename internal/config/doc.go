// Package config loads frostline settings.
//
// Settings are read from a TOML or YAML file (chosen by extension) on top
// of built-in defaults, overridden by FROSTLINE_* environment variables,
// and validated before use. Watch reloads a file whenever it changes.
//
//	[log]
//	level = "debug"
//
//	[editor]
//	page_limit = [1, 8]
//	theme = "monokai"
//
//	[freeze]
//	marker_class = "readonly"
package config
