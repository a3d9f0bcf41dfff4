package service

import (
	"context"
	"time"

	"mooring/internal/domain"
	"mooring/internal/monitor"
	"mooring/internal/repository"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// IngestResult summarizes one received snapshot
type IngestResult struct {
	BatchID         string          `json:"batchId"`
	RecordsReceived int             `json:"recordsReceived"`
	Attention       int             `json:"attention"`
	Critical        int             `json:"critical"`
	Persisted       bool            `json:"persisted"`
	Alerts          []monitor.Alert `json:"alerts,omitempty"`
}

// BatchReceived is the payload of EventReadingsReceived
type BatchReceived struct {
	BatchID    string    `json:"batchId"`
	Port       string    `json:"port"`
	Records    int       `json:"records"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ReceiverService folds received snapshots into the monitor
type ReceiverService struct {
	monitor  *monitor.Monitor
	store    repository.ReadingStore
	eventBus *EventBus
	logger   *log.Logger
	now      func() time.Time
}

// NewReceiverService creates a receiver service. store may be nil to keep
// history in memory only.
func NewReceiverService(m *monitor.Monitor, store repository.ReadingStore, eventBus *EventBus, logger *log.Logger) *ReceiverService {
	if logger == nil {
		logger = log.Default()
	}
	return &ReceiverService{
		monitor:  m,
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// Monitor returns the live hook state
func (s *ReceiverService) Monitor() *monitor.Monitor {
	return s.monitor
}

// Ingest flattens port with a receipt timestamp, folds every reading into
// the monitor, stores the batch and announces it with any alerts raised.
// A storage failure is logged and reported in the result, not returned.
func (s *ReceiverService) Ingest(ctx context.Context, port *domain.PortRecord) (*IngestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	receivedAt := s.now()
	readings := monitor.Flatten(port, receivedAt)
	alerts := s.monitor.ApplyAll(readings)

	result := &IngestResult{
		BatchID:         uuid.NewString(),
		RecordsReceived: len(readings),
		Alerts:          alerts,
	}
	for _, a := range alerts {
		if a.Level == monitor.AlertCritical {
			result.Critical++
		} else {
			result.Attention++
		}
	}

	if s.store != nil {
		batch := repository.Batch{
			ID:         result.BatchID,
			Port:       readingsPort(readings, port),
			ReceivedAt: receivedAt,
			Readings:   readings,
		}
		if err := s.store.SaveBatch(ctx, batch); err != nil {
			s.logger.Error("failed to store batch", "batch", result.BatchID, "err", err)
		} else {
			result.Persisted = true
		}
	}

	s.publish(Event{Type: EventReadingsReceived, Payload: BatchReceived{
		BatchID:    result.BatchID,
		Port:       readingsPort(readings, port),
		Records:    result.RecordsReceived,
		ReceivedAt: receivedAt,
	}})
	for _, a := range alerts {
		eventType := EventHookAttention
		if a.Level == monitor.AlertCritical {
			eventType = EventHookCritical
		}
		s.publish(Event{Type: eventType, Payload: a.Hook})
		s.logger.Warn(a.Level, "hook", a.Hook.Key, "tension", derefInt(a.Hook.Tension), "rate", a.Hook.RateOfChange)
	}

	s.logger.Debug("batch received", "batch", result.BatchID, "records", result.RecordsReceived, "alerts", len(alerts))
	return result, nil
}

// History returns up to limit samples of the hook under key, oldest first.
// The store is preferred when configured; otherwise the monitor's window.
func (s *ReceiverService) History(ctx context.Context, key string, limit int) ([]monitor.Sample, error) {
	_, tracked := s.monitor.Hook(key)
	if s.store != nil {
		samples, err := s.store.History(ctx, key, limit)
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 && !tracked {
			return nil, repository.ErrNotFound
		}
		return samples, nil
	}

	samples, ok := s.monitor.History(key)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if limit > 0 && len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}
	return samples, nil
}

// Batches lists the newest stored batches
func (s *ReceiverService) Batches(ctx context.Context, limit int) ([]repository.BatchSummary, error) {
	if s.store == nil {
		return []repository.BatchSummary{}, nil
	}
	return s.store.ListBatches(ctx, limit)
}

func (s *ReceiverService) publish(event Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(event)
	}
}

func readingsPort(readings []monitor.Reading, port *domain.PortRecord) string {
	if len(readings) > 0 {
		return readings[0].Port
	}
	if port.Name == "" {
		return monitor.UnknownPort
	}
	return port.Name
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
