package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/report"
)

func newScanCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "Report whitespace defects without modifying files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := scanFiles(args)
			if err != nil {
				return err
			}

			if jsonOut {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
					return err
				}
			} else if err := rep.WriteText(os.Stdout); err != nil {
				return err
			}

			if rep.HasFindings() {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")
	return cmd
}

// scanFiles queries every file's full buffer and collects the results.
func scanFiles(paths []string) (*report.Report, error) {
	reg := engine.NewRegistry(
		engine.WithTables(tables),
		engine.WithLogger(log.WithComponent("scan")),
	)
	rep := report.New()

	for _, path := range paths {
		e, buf, err := openFile(reg, path)
		if err != nil {
			return nil, err
		}
		defects, err := e.QueryDefects(0, buf.Len())
		if err != nil {
			return nil, err
		}
		rep.Add(report.FromDefects(path, e.ModeID(), buf.Text(), defects))
	}
	return rep, nil
}
