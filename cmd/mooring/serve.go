package main

import (
	"path/filepath"
	"sync/atomic"

	"mooring/internal/handler"
	"mooring/internal/hub"
	"mooring/internal/service"
	"mooring/internal/watcher"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the newest snapshot file and a static root",
	Long: `Serves GET /hooks with the newest snapshot file written by
"generate --file", static files from --root for everything else, and
announces new snapshots on /events.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen address")
	f.String("root", "", "static file root")
	f.String("dir", "", "directory holding snapshot files")
	f.String("pattern", "", "snapshot file glob within dir")
	bindFlags(serveCmd, map[string]string{
		"addr":    "serve.addr",
		"root":    "serve.root",
		"dir":     "serve.dir",
		"pattern": "serve.pattern",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := cfg.Serve
	pattern := filepath.Join(sc.Dir, sc.Pattern)

	ctx, stop := signalContext()
	defer stop()

	sseHub := hub.New(logger)
	go sseHub.Run(ctx)

	w, err := watcher.New(pattern, func(path string) {
		sseHub.Broadcast(service.Event{
			Type:    service.EventSnapshotWritten,
			Payload: map[string]string{"path": path},
		})
	}, logger)
	if err != nil {
		return err
	}
	if err := w.Scan(); err != nil {
		return err
	}

	// the watcher is authoritative until it fails, then every request globs
	var watching atomic.Bool
	watching.Store(true)
	glob := handler.GlobLocator(pattern)
	go func() {
		if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("snapshot watcher stopped, globbing on each request", "err", err)
			watching.Store(false)
		}
	}()
	locator := locatorFunc(func() (string, bool) {
		if watching.Load() {
			return w.Latest()
		}
		return glob.Latest()
	})

	routes := handler.NewDevHandler(locator, sc.Root, logger).Routes(sseHub)
	return listenAndServe(ctx, sc.Addr, handler.Chain(routes,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger),
	))
}

type locatorFunc func() (string, bool)

func (f locatorFunc) Latest() (string, bool) { return f() }
