package main

import (
	"errors"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/engine/buffer"
	"github.com/dshills/blankline/internal/render"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Inspect a file's defects interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
}

func runView(path string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("view requires a terminal; use scan for batch output")
	}

	reg := engine.NewRegistry(
		engine.WithTables(tables),
		engine.WithLogger(log.WithComponent("view")),
	)
	e, buf, err := openFile(reg, path)
	if err != nil {
		return err
	}
	defects, err := e.QueryDefects(0, buf.Len())
	if err != nil {
		return err
	}

	title := path
	if buf.LineEnding() == buffer.EndingCRLF {
		title += " [crlf]"
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view := render.NewView(screen, e.Style().TabWidth)
	view.Draw(title, buf.Text(), defects)

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			view.Draw(title, buf.Text(), defects)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'j' || ev.Key() == tcell.KeyDown:
				view.Scroll(1)
				view.Draw(title, buf.Text(), defects)
			case ev.Rune() == 'k' || ev.Key() == tcell.KeyUp:
				view.Scroll(-1)
				view.Draw(title, buf.Text(), defects)
			}
		}
	}
}
