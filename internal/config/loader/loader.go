// Package loader parses configuration files into table form.
//
// Three formats share one document shape: TOML, JSON, and Lua (a
// script returning a table). A missing file is not an error; loaders
// return nil tables so callers can layer sources without existence
// checks.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/blankline/internal/config"
	"github.com/dshills/blankline/internal/style"
)

// Loader parses one configuration source.
type Loader interface {
	// Load reads the source and returns its tables.
	// Returns nil, nil if the source does not exist.
	Load() (*config.Tables, error)
}

// ParseError describes a malformed configuration source.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error { return e.Err }

// ForPath returns a loader matching the file extension: .toml, .json,
// or .lua. Unknown extensions fall back to TOML.
func ForPath(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONLoader(path)
	case ".lua":
		return NewLuaLoader(path)
	default:
		return NewTOMLLoader(path)
	}
}

// document is the on-disk shape shared by all formats.
type document struct {
	Default     defaultSection `toml:"default"`
	Files       []fileRule     `toml:"file"`
	Modes       []modeRule     `toml:"mode"`
	FileActions []fileRule     `toml:"file-action"`
	ModeActions []modeRule     `toml:"mode-action"`
}

type defaultSection struct {
	Style    []string `toml:"style"`
	Tabs     *bool    `toml:"tabs"`
	TabWidth int      `toml:"tab-width"`
	Actions  []string `toml:"actions"`
}

type fileRule struct {
	Match    string   `toml:"match"`
	Style    []string `toml:"style"`
	Tabs     *bool    `toml:"tabs"`
	TabWidth int      `toml:"tab-width"`
	Actions  []string `toml:"actions"`
}

type modeRule struct {
	Mode     string   `toml:"mode"`
	Style    []string `toml:"style"`
	Tabs     *bool    `toml:"tabs"`
	TabWidth int      `toml:"tab-width"`
	Actions  []string `toml:"actions"`
}

// tables converts the parsed document into config tables.
func (d *document) tables() *config.Tables {
	t := &config.Tables{
		DefaultTokens:        d.Default.Style,
		DefaultTabsPreferred: d.Default.Tabs,
		DefaultTabWidth:      d.Default.TabWidth,
		DefaultActions:       d.Default.Actions,
	}
	for _, f := range d.Files {
		t.FileStyles = append(t.FileStyles, style.Entry{
			Key:           f.Match,
			Tokens:        f.Style,
			TabsPreferred: f.Tabs,
			TabWidth:      f.TabWidth,
		})
	}
	for _, m := range d.Modes {
		t.ModeStyles = append(t.ModeStyles, style.Entry{
			Key:           m.Mode,
			Tokens:        m.Style,
			TabsPreferred: m.Tabs,
			TabWidth:      m.TabWidth,
		})
	}
	for _, f := range d.FileActions {
		t.FileActions = append(t.FileActions, style.ActionEntry{
			Key:    f.Match,
			Tokens: f.Actions,
		})
	}
	for _, m := range d.ModeActions {
		t.ModeActions = append(t.ModeActions, style.ActionEntry{
			Key:    m.Mode,
			Tokens: m.Actions,
		})
	}
	return t
}
