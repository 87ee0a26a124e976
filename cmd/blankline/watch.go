package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/blankline/internal/config"
	"github.com/dshills/blankline/internal/config/loader"
	"github.com/dshills/blankline/internal/config/watcher"
	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/engine/buffer"
	"github.com/dshills/blankline/internal/report"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>...",
		Short: "Rescan files whenever they change",
		Long: `Watch monitors the given files and reports defects on every change.
The configuration file is watched too; edits to it re-resolve the
style of every watched file without restarting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args)
		},
	}
}

// watchedFile keeps one buffer activated across changes so the
// engine's edge tracking stays warm.
type watchedFile struct {
	eng *engine.Engine
	buf *buffer.Buffer
}

func runWatch(paths []string) error {
	reg := engine.NewRegistry(
		engine.WithTables(tables),
		engine.WithLogger(log.WithComponent("watch")),
	)

	files := make(map[string]*watchedFile, len(paths))
	for _, path := range paths {
		e, buf, err := openFile(reg, path)
		if err != nil {
			return err
		}
		files[path] = &watchedFile{eng: e, buf: buf}
	}

	w := watcher.New(watcher.WithDebounce(200 * time.Millisecond))
	for _, path := range paths {
		if err := w.Watch(path); err != nil {
			return err
		}
	}
	cfgPath := configPath()
	if cfgPath != "" {
		if err := w.Watch(cfgPath); err != nil {
			return err
		}
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Path == cfgPath {
			reloadConfig(reg, cfgPath)
			reportFiles(files, paths)
			return
		}
		if wf, ok := files[ev.Path]; ok {
			refresh(wf, ev.Path)
			reportFiles(files, []string{ev.Path})
		}
	})

	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	// Initial pass so the user sees current state immediately.
	reportFiles(files, paths)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return nil
}

// refresh reloads a file's content into its live buffer and notifies
// the engine of the whole-buffer replacement.
func refresh(wf *watchedFile, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("re-reading %s: %v", path, err)
		return
	}
	oldLen := wf.buf.Len()
	if _, err := wf.buf.Replace(0, oldLen, string(data)); err != nil {
		log.Error("refreshing %s: %v", path, err)
		return
	}
	wf.eng.OnEdit(0, oldLen, len(data))
}

// reloadConfig rebuilds the tables from scratch (stock defaults, file,
// environment) and re-resolves every active engine.
func reloadConfig(reg *engine.Registry, path string) {
	fresh := config.Default()
	t, err := loader.ForPath(path).Load()
	if err != nil {
		log.Error("config reload failed: %v", err)
		return
	}
	fresh.Merge(t)
	if envTables, err := loader.NewEnvLoader().Load(); err == nil {
		fresh.Merge(envTables)
	}

	tables.Replace(fresh)
	reg.Reresolve()
	log.Info("configuration reloaded from %s", path)
}

// reportFiles queries the named files and prints the report.
func reportFiles(files map[string]*watchedFile, paths []string) {
	rep := report.New()
	for _, path := range paths {
		wf, ok := files[path]
		if !ok {
			continue
		}
		defects, err := wf.eng.QueryDefects(0, wf.buf.Len())
		if err != nil {
			log.Error("querying %s: %v", path, err)
			continue
		}
		rep.Add(report.FromDefects(path, wf.eng.ModeID(), wf.buf.Text(), defects))
	}
	_ = rep.WriteText(os.Stdout)
}
