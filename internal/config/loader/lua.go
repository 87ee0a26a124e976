package loader

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blankline/internal/config"
)

// LuaLoader loads configuration from a Lua script that returns a table
// shaped like the TOML document. Keys may use dashes (quoted) or
// underscores. The script runs in a restricted state with no os, io,
// or file-loading functions.
type LuaLoader struct {
	path string
}

// NewLuaLoader creates a Lua loader for the given path.
func NewLuaLoader(path string) *LuaLoader {
	return &LuaLoader{path: path}
}

// Load reads configuration from the configured path.
func (l *LuaLoader) Load() (*config.Tables, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.parse(l.path, string(data))
}

// LoadFromString evaluates a script directly. Used by tests and
// embedded hosts that carry their config inline.
func (l *LuaLoader) LoadFromString(script string) (*config.Tables, error) {
	return l.parse("<string>", script)
}

func (l *LuaLoader) parse(source, script string) (*config.Tables, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Only the computational libraries; no os, io, or debug.
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("initializing lua state: %w", err)
		}
	}

	// Base opens file-loading functions; remove them.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if err := L.DoString(script); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, &ParseError{Path: source, Message: "config script must return a table"}
	}

	var doc document
	if d, ok := luaField(tbl, "default").(*lua.LTable); ok {
		doc.Default = defaultSection{
			Style:    luaStrings(d, "style"),
			Tabs:     luaOptionalBool(d, "tabs"),
			TabWidth: luaInt(d, "tab-width", "tab_width"),
			Actions:  luaStrings(d, "actions"),
		}
	}
	luaEach(tbl, "file", func(v *lua.LTable) {
		doc.Files = append(doc.Files, luaFileRule(v))
	})
	luaEach(tbl, "mode", func(v *lua.LTable) {
		doc.Modes = append(doc.Modes, luaModeRule(v))
	})
	luaEach(tbl, "file_action", func(v *lua.LTable) {
		doc.FileActions = append(doc.FileActions, luaFileRule(v))
	})
	luaEach(tbl, "mode_action", func(v *lua.LTable) {
		doc.ModeActions = append(doc.ModeActions, luaModeRule(v))
	})

	return doc.tables(), nil
}

func luaFileRule(v *lua.LTable) fileRule {
	return fileRule{
		Match:    luaString(v, "match"),
		Style:    luaStrings(v, "style"),
		Tabs:     luaOptionalBool(v, "tabs"),
		TabWidth: luaInt(v, "tab-width", "tab_width"),
		Actions:  luaStrings(v, "actions"),
	}
}

func luaModeRule(v *lua.LTable) modeRule {
	return modeRule{
		Mode:     luaString(v, "mode"),
		Style:    luaStrings(v, "style"),
		Tabs:     luaOptionalBool(v, "tabs"),
		TabWidth: luaInt(v, "tab-width", "tab_width"),
		Actions:  luaStrings(v, "actions"),
	}
}

func luaField(t *lua.LTable, keys ...string) lua.LValue {
	for _, key := range keys {
		if v := t.RawGetString(key); v != lua.LNil {
			return v
		}
	}
	return lua.LNil
}

func luaString(t *lua.LTable, keys ...string) string {
	if s, ok := luaField(t, keys...).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func luaStrings(t *lua.LTable, keys ...string) []string {
	arr, ok := luaField(t, keys...).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	arr.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

func luaOptionalBool(t *lua.LTable, keys ...string) *bool {
	if b, ok := luaField(t, keys...).(lua.LBool); ok {
		v := bool(b)
		return &v
	}
	return nil
}

func luaInt(t *lua.LTable, keys ...string) int {
	if n, ok := luaField(t, keys...).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func luaEach(t *lua.LTable, key string, fn func(*lua.LTable)) {
	arr, ok := luaField(t, key).(*lua.LTable)
	if !ok {
		return
	}
	arr.ForEach(func(_, v lua.LValue) {
		if row, ok := v.(*lua.LTable); ok {
			fn(row)
		}
	})
}
