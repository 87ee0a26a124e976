package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/blankline/internal/cleanup"
	"github.com/dshills/blankline/internal/config"
	"github.com/dshills/blankline/internal/config/loader"
	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/engine/buffer"
	"github.com/dshills/blankline/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string

	tables *config.Tables
	log    *logging.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blankline",
		Short: "Detect and clean whitespace defects",
		Long: `Blankline finds and repairs whitespace defects: trailing blanks,
non-canonical indentation, space/tab mixing, and empty lines at the
buffer edges. Styles resolve per file and per language from layered
configuration tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "configuration file (.toml, .json, or .lua)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newScanCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setup builds the configuration tables: stock defaults, then the
// config file, then environment overrides.
func setup() error {
	log = logging.New(logging.Config{
		Level:  logging.ParseLevel(flagLogLevel),
		Prefix: "blankline",
	})
	logging.SetDefault(log)

	tables = config.Default()

	path := flagConfig
	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		t, err := loader.ForPath(path).Load()
		if err != nil {
			return err
		}
		tables.Merge(t)
		if t != nil {
			log.Debug("loaded config from %s", path)
		}
	}

	envTables, err := loader.NewEnvLoader().Load()
	if err != nil {
		return err
	}
	tables.Merge(envTables)
	return nil
}

// defaultConfigPath looks for a config file in the user config dir.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"blankline.toml", "blankline.json", "blankline.lua"} {
		p := filepath.Join(dir, "blankline", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// configPath returns the active config file path, or empty.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return defaultConfigPath()
}

// detectMode identifies a file's language for per-mode resolution.
func detectMode(path string, content []byte) string {
	lang := enry.GetLanguage(filepath.Base(path), content)
	if lang == "" {
		return "text"
	}
	return strings.ToLower(lang)
}

// openFile reads a file and activates an engine for it.
func openFile(reg *engine.Registry, path string) (*engine.Engine, *buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	buf := buffer.NewFromString(string(data))
	mode := detectMode(path, data)
	e, err := reg.Activate(path, buf, path, mode)
	if err != nil {
		return nil, nil, fmt.Errorf("activating %s: %w", path, err)
	}
	return e, buf, nil
}

// applyEdits converts a cleanup batch and applies it to the buffer,
// notifying the engine.
func applyEdits(e *engine.Engine, buf *buffer.Buffer, edits []cleanup.Edit) error {
	batch := make([]buffer.Edit, len(edits))
	for i, ed := range edits {
		batch[i] = buffer.NewEdit(buffer.Range{Start: ed.Start, End: ed.End}, ed.NewText)
	}
	if err := buf.ApplyEdits(batch); err != nil {
		return err
	}
	for _, ed := range edits {
		e.OnEdit(ed.Start, ed.End, len(ed.NewText))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("blankline %s\n", version)
			fmt.Printf("Commit: %s\n", commit)
			fmt.Printf("Built: %s\n", date)
		},
	}
}
