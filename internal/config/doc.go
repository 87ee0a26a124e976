// Package config holds the layered style and action tables the engine
// resolves against when a buffer is activated.
//
// Tables can be populated programmatically, loaded from TOML, JSON, or
// Lua files via the loader subpackage, and reloaded live via the
// watcher subpackage. Resolution itself lives in the style package;
// config only owns the table data and defaults.
package config
