package main

import (
	"context"
	"fmt"

	"mooring/internal/handler"
	"mooring/internal/hub"
	"mooring/internal/monitor"
	"mooring/internal/repository"
	"mooring/internal/repository/sqlite"
	"mooring/internal/service"

	"github.com/spf13/cobra"
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Receive snapshots and track hook tensions",
	Long: `Accepts snapshots on POST / and /api/readings, folds every hook reading into
a live monitor, optionally stores the history in SQLite, and serves hook state,
alerts and a Server-Sent Events stream.`,
	Args: cobra.NoArgs,
	RunE: runReceive,
}

func init() {
	f := receiveCmd.Flags()
	f.String("addr", "", "listen address")
	f.String("db", "", "SQLite database path (empty keeps history in memory)")
	f.Int("max-tension", 0, "tension reported as 100%")
	f.Float64("attention", 0, "attention threshold, percent of max tension")
	f.Float64("critical", 0, "critical threshold, percent of max tension")
	bindFlags(receiveCmd, map[string]string{
		"addr":        "receiver.addr",
		"db":          "receiver.database.path",
		"max-tension": "receiver.max_tension",
		"attention":   "receiver.attention_threshold",
		"critical":    "receiver.critical_threshold",
	})
}

func runReceive(cmd *cobra.Command, args []string) error {
	rc := cfg.Receiver
	logger.Info("receiver config", "summary", cfg.Summary())

	var store repository.ReadingStore
	if rc.Database.Path != "" {
		repo, err := sqlite.New(rc.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()
		logger.Info("database opened", "path", rc.Database.Path)
		store = repo
	}

	ctx, stop := signalContext()
	defer stop()

	m := monitor.New(
		monitor.WithMaxTension(rc.MaxTension),
		monitor.WithThresholds(rc.AttentionThreshold, rc.CriticalThreshold),
		monitor.WithHistoryLimit(rc.HistoryLimit),
	)
	eventBus := service.NewEventBus()
	sseHub := hub.New(logger)
	go sseHub.Run(ctx)
	forwardEvents(ctx, eventBus, sseHub)

	svc := service.NewReceiverService(m, store, eventBus, logger)
	routes := handler.NewReceiverHandler(svc, rc.HistoryLimit, logger).Routes(sseHub)

	return listenAndServe(ctx, rc.Addr, handler.Chain(routes,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger),
	))
}

// forwardEvents relays every bus event to SSE clients until ctx is done
func forwardEvents(ctx context.Context, bus *service.EventBus, h *hub.Hub) {
	events := make(chan service.Event, 100)
	bus.Subscribe(events)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				h.Broadcast(event)
			}
		}
	}()
}
