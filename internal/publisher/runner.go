// Package publisher runs the generation loop: export a snapshot, hand it to a
// sink, mutate the simulation, wait, repeat.
package publisher

import (
	"context"
	"sync/atomic"
	"time"

	"mooring/internal/codec"
	"mooring/internal/domain"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the wait between two snapshots
const DefaultInterval = 2 * time.Second

// Source is a simulation that can be exported and advanced
type Source interface {
	Export() (*domain.PortRecord, error)
	Update()
}

// Stats counts loop iterations and delivered payloads
type Stats struct {
	Loops     int64
	Delivered int64
	Failed    int64
}

// Runner drives a Source into a Sink
type Runner struct {
	source   Source
	sink     Sink
	encoder  codec.Exporter
	interval time.Duration
	logger   *log.Logger

	loops     atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
}

// Option configures a Runner
type Option func(*Runner)

// WithInterval sets the wait between snapshots
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.interval = d
	}
}

// WithEncoder sets the wire encoding, compact JSON by default
func WithEncoder(e codec.Exporter) Option {
	return func(r *Runner) {
		r.encoder = e
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner
func NewRunner(source Source, sink Sink, opts ...Option) *Runner {
	r := &Runner{
		source:   source,
		sink:     sink,
		encoder:  codec.NewCompactJSONCodec(),
		interval: DefaultInterval,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if mt, ok := sink.(MediaTyper); ok {
		mt.SetMediaType(codec.MediaType(r.encoder.Format()))
	}
	return r
}

// Run loops until ctx is cancelled. Delivery and export failures are logged
// and never stop the loop; the simulation is advanced on every iteration.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("publishing snapshots", "sink", r.sink.Describe(), "interval", r.interval)

	for ctx.Err() == nil {
		r.Step(ctx)

		select {
		case <-ctx.Done():
		case <-time.After(r.interval):
		}
	}

	stats := r.Stats()
	r.logger.Info("publisher stopped", "loops", stats.Loops, "delivered", stats.Delivered, "failed", stats.Failed)
	return nil
}

// Step runs one iteration without waiting
func (r *Runner) Step(ctx context.Context) {
	loop := r.loops.Add(1)
	defer r.source.Update()

	port, err := r.source.Export()
	if err != nil {
		r.failed.Add(1)
		r.logger.Error("export failed", "loop", loop, "err", err)
		return
	}
	payload, err := codec.Encode(r.encoder, port)
	if err != nil {
		r.failed.Add(1)
		r.logger.Error("encode failed", "loop", loop, "err", err)
		return
	}
	if err := r.sink.Publish(ctx, payload); err != nil {
		r.failed.Add(1)
		r.logger.Error("publish failed", "loop", loop, "sink", r.sink.Describe(), "err", err)
		return
	}
	n := r.delivered.Add(1)
	r.logger.Debug("payload delivered", "loop", loop, "payload", n, "bytes", len(payload))
}

// Stats returns the counters so far
func (r *Runner) Stats() Stats {
	return Stats{
		Loops:     r.loops.Load(),
		Delivered: r.delivered.Load(),
		Failed:    r.failed.Load(),
	}
}
