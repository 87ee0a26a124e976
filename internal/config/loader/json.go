package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/blankline/internal/config"
)

// JSONLoader loads configuration from a JSON file. The document shape
// mirrors the TOML layout, keyed the same way.
type JSONLoader struct {
	path string
}

// NewJSONLoader creates a JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{path: path}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (*config.Tables, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.parse(l.path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (*config.Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(source string, data []byte) (*config.Tables, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)

	var doc document
	if d := root.Get("default"); d.Exists() {
		doc.Default = defaultSection{
			Style:    stringList(d.Get("style")),
			Tabs:     optionalBool(d.Get("tabs")),
			TabWidth: int(d.Get("tab-width").Int()),
			Actions:  stringList(d.Get("actions")),
		}
	}
	root.Get("file").ForEach(func(_, v gjson.Result) bool {
		doc.Files = append(doc.Files, jsonFileRule(v))
		return true
	})
	root.Get("mode").ForEach(func(_, v gjson.Result) bool {
		doc.Modes = append(doc.Modes, jsonModeRule(v))
		return true
	})
	root.Get("file-action").ForEach(func(_, v gjson.Result) bool {
		doc.FileActions = append(doc.FileActions, jsonFileRule(v))
		return true
	})
	root.Get("mode-action").ForEach(func(_, v gjson.Result) bool {
		doc.ModeActions = append(doc.ModeActions, jsonModeRule(v))
		return true
	})

	return doc.tables(), nil
}

func jsonFileRule(v gjson.Result) fileRule {
	return fileRule{
		Match:    v.Get("match").String(),
		Style:    stringList(v.Get("style")),
		Tabs:     optionalBool(v.Get("tabs")),
		TabWidth: int(v.Get("tab-width").Int()),
		Actions:  stringList(v.Get("actions")),
	}
}

func jsonModeRule(v gjson.Result) modeRule {
	return modeRule{
		Mode:     v.Get("mode").String(),
		Style:    stringList(v.Get("style")),
		Tabs:     optionalBool(v.Get("tabs")),
		TabWidth: int(v.Get("tab-width").Int()),
		Actions:  stringList(v.Get("actions")),
	}
}

func stringList(v gjson.Result) []string {
	if !v.Exists() {
		return nil
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

func optionalBool(v gjson.Result) *bool {
	if !v.Exists() {
		return nil
	}
	b := v.Bool()
	return &b
}
