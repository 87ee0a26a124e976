package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/blankline/internal/config"
)

// Environment variables recognized by the env loader.
const (
	// EnvStyle is a comma-separated list of defect-kind tokens
	// replacing the default style.
	EnvStyle = "BLANKLINE_STYLE"

	// EnvTabWidth overrides the default tab width.
	EnvTabWidth = "BLANKLINE_TAB_WIDTH"

	// EnvTabs overrides the default tab preference ("true"/"false").
	EnvTabs = "BLANKLINE_TABS"

	// EnvActions is a comma-separated list of action tokens replacing
	// the default actions.
	EnvActions = "BLANKLINE_ACTIONS"
)

// EnvLoader builds a table overlay from environment variables. It only
// produces defaults; per-file and per-mode tables come from files.
type EnvLoader struct {
	lookup func(string) (string, bool)
}

// NewEnvLoader creates an environment loader reading the process env.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{lookup: os.LookupEnv}
}

// NewEnvLoaderFunc creates a loader with a custom lookup, for tests.
func NewEnvLoaderFunc(lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{lookup: lookup}
}

// Load reads the recognized variables. Unset variables leave the
// corresponding fields at their zero value so Merge skips them.
// Malformed numeric or boolean values are ignored rather than failing
// startup.
func (l *EnvLoader) Load() (*config.Tables, error) {
	t := &config.Tables{}

	if v, ok := l.lookup(EnvStyle); ok {
		t.DefaultTokens = splitList(v)
	}
	if v, ok := l.lookup(EnvTabWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			t.DefaultTabWidth = n
		}
	}
	if v, ok := l.lookup(EnvTabs); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			t.DefaultTabsPreferred = &b
		}
	}
	if v, ok := l.lookup(EnvActions); ok {
		t.DefaultActions = splitList(v)
	}

	return t, nil
}

// splitList splits a comma-separated token list, trimming whitespace
// and dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
