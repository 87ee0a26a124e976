package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/report"
)

func newCleanCmd() *cobra.Command {
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "clean <file>...",
		Short: "Repair whitespace defects in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := engine.NewRegistry(
				engine.WithTables(tables),
				engine.WithLogger(log.WithComponent("clean")),
			)
			rep := report.New()

			for _, path := range args {
				fr, err := cleanFile(reg, path, dryRun)
				if err != nil {
					return err
				}
				rep.Add(fr)
			}

			if jsonOut {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(append(data, '\n'))
				return err
			}
			return rep.WriteText(os.Stdout)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report edits without writing files")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	return cmd
}

// cleanFile applies the full cleanup to one file and rewrites it with
// its original permissions. With dryRun the file is left untouched and
// only the edit count is reported.
func cleanFile(reg *engine.Registry, path string, dryRun bool) (report.FileReport, error) {
	e, buf, err := openFile(reg, path)
	if err != nil {
		return report.FileReport{}, err
	}

	edits, err := e.CleanAll()
	if err != nil {
		return report.FileReport{}, fmt.Errorf("cleaning %s: %w", path, err)
	}

	fr := report.FileReport{Path: path, Mode: e.ModeID(), EditCount: len(edits)}
	if len(edits) == 0 || dryRun {
		return fr, nil
	}

	if err := applyEdits(e, buf, edits); err != nil {
		return report.FileReport{}, err
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(buf.Text()), perm); err != nil {
		return report.FileReport{}, fmt.Errorf("writing %s: %w", path, err)
	}

	fr.Cleaned = true
	return fr, nil
}
