package main

import (
	"fmt"

	"mooring/internal/codec"
	"mooring/internal/pool"
	"mooring/internal/publisher"
	"mooring/internal/sim"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [url]",
	Short: "Simulate a port and publish a snapshot every interval",
	Long: `Builds a random port and publishes its snapshot every interval, mutating
tensions and radar distances between snapshots. Snapshots are POSTed as JSON
to url (default: the configured receiver) or, with --file, written to
timestamped files such as out/output_20250102150405.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("file", "", "write snapshots to timestamped files derived from this path")
	f.String("format", "json", "file format: json or yaml")
	f.Duration("interval", publisher.DefaultInterval, "wait between snapshots")
	f.Duration("timeout", 0, "HTTP request timeout")
	f.Uint64("seed1", 0, "first PCG seed (0 with seed2 0 picks a random seed)")
	f.Uint64("seed2", 0, "second PCG seed")
	bindFlags(generateCmd, map[string]string{
		"file":     "publisher.file",
		"format":   "publisher.format",
		"interval": "simulation.interval",
		"timeout":  "publisher.timeout",
		"seed1":    "simulation.seed1",
		"seed2":    "simulation.seed2",
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	url := cfg.Publisher.URL
	if len(args) == 1 {
		url = args[0]
	}
	if url != "" && cfg.Publisher.File != "" {
		return fmt.Errorf("a url and --file are mutually exclusive")
	}

	engine := sim.NewEngine(
		sim.NewRand(cfg.Simulation.Seed1, cfg.Simulation.Seed2),
		pool.NewAllocator(),
		sim.WithDistributions(cfg.Distributions()),
	)
	port, err := engine.NewPort()
	if err != nil {
		return fmt.Errorf("build port: %w", err)
	}
	logger.Info("port built", "port", port.Name(), "berths", len(port.Berths()))

	opts := []publisher.Option{
		publisher.WithInterval(cfg.Simulation.Interval.Duration()),
		publisher.WithLogger(logger),
	}

	var sink publisher.Sink
	if cfg.Publisher.File != "" {
		c, err := codec.ForFormat(cfg.Publisher.Format)
		if err != nil {
			return err
		}
		fileSink := publisher.NewFileSink(cfg.Publisher.File)
		fileSink.Written = func(path string) {
			logger.Info("snapshot written", "path", path)
		}
		sink = fileSink
		opts = append(opts, publisher.WithEncoder(c))
	} else {
		if url == "" {
			url = "http://" + cfg.Receiver.Addr + "/"
		}
		sink = publisher.NewHTTPSink(url, cfg.Publisher.Timeout.Duration())
	}

	ctx, stop := signalContext()
	defer stop()
	return publisher.NewRunner(port, sink, opts...).Run(ctx)
}
