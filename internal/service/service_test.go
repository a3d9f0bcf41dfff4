package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"mooring/internal/domain"
	"mooring/internal/monitor"
	"mooring/internal/repository"
	"mooring/internal/repository/sqlite"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func testPort(tensions ...*int) *domain.PortRecord {
	hooks := make([]domain.HookRecord, 0, len(tensions))
	for i, tension := range tensions {
		h := domain.HookRecord{Name: domain.HookName(i + 1), Tension: tension}
		if tension != nil {
			h.AttachedLine = domain.LineHead.Ptr()
		}
		hooks = append(hooks, h)
	}
	return &domain.PortRecord{
		Name: "Geraldton",
		Berths: []domain.BerthRecord{{
			Name:     "Berth B",
			Bollards: []domain.BollardRecord{{Name: "BOL010", Hooks: hooks}},
		}},
	}
}

func newTestService(t *testing.T, store repository.ReadingStore) (*ReceiverService, chan Event) {
	t.Helper()
	bus := NewEventBus()
	events := make(chan Event, 32)
	bus.Subscribe(events)
	svc := NewReceiverService(monitor.New(), store, bus, log.New(io.Discard))
	svc.now = func() time.Time { return time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC) }
	return svc, events
}

func drain(events chan Event) []Event {
	var out []Event
	for {
		select {
		case e := <-events:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestEventBus(t *testing.T) {
	t.Run("delivers to every subscriber", func(t *testing.T) {
		bus := NewEventBus()
		a, b := make(chan Event, 1), make(chan Event, 1)
		bus.Subscribe(a)
		bus.Subscribe(b)

		bus.Publish(Event{Type: EventReadingsReceived})

		if (<-a).Type != EventReadingsReceived || (<-b).Type != EventReadingsReceived {
			t.Error("expected both subscribers to receive the event")
		}
	})

	t.Run("slow subscriber does not block", func(t *testing.T) {
		bus := NewEventBus()
		full := make(chan Event)
		bus.Subscribe(full)

		done := make(chan struct{})
		go func() {
			bus.Publish(Event{Type: EventHookCritical})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
	})
}

func TestIngest(t *testing.T) {
	svc, events := newTestService(t, nil)

	result, err := svc.Ingest(context.Background(), testPort(intPtr(2), nil, intPtr(9)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RecordsReceived != 3 {
		t.Errorf("expected 3 records, got %d", result.RecordsReceived)
	}
	if _, err := uuid.Parse(result.BatchID); err != nil {
		t.Errorf("expected uuid batch id, got %q", result.BatchID)
	}
	if result.Critical != 1 || result.Attention != 0 {
		t.Errorf("expected 1 critical and 0 attention, got %d and %d", result.Critical, result.Attention)
	}
	if result.Persisted {
		t.Error("nothing should be persisted without a store")
	}
	if svc.Monitor().Len() != 3 {
		t.Errorf("expected 3 tracked hooks, got %d", svc.Monitor().Len())
	}

	got := drain(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != EventReadingsReceived {
		t.Errorf("expected readings_received first, got %s", got[0].Type)
	}
	if got[1].Type != EventHookCritical {
		t.Errorf("expected hook_critical, got %s", got[1].Type)
	}
	if payload, ok := got[0].Payload.(BatchReceived); !ok || payload.Port != "Geraldton" || payload.Records != 3 {
		t.Errorf("unexpected payload %+v", got[0].Payload)
	}
}

func TestIngestSecondSnapshotTracksChange(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, testPort(intPtr(2))); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Ingest(ctx, testPort(intPtr(8))); err != nil {
		t.Fatal(err)
	}

	status, ok := svc.Monitor().Hook("Berth B.BOL010.Hook 1")
	if !ok {
		t.Fatal("expected hook to be tracked")
	}
	if *status.PreviousTension != 2 || *status.Tension != 8 || status.RateOfChange != 6 {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestIngestWithStore(t *testing.T) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc, _ := newTestService(t, store)
	ctx := context.Background()

	for _, tension := range []int{1, 2, 3} {
		result, err := svc.Ingest(ctx, testPort(intPtr(tension)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Persisted {
			t.Error("expected batch to be persisted")
		}
	}

	n, err := store.CountReadings(ctx)
	if err != nil || n != 3 {
		t.Errorf("expected 3 stored readings, got %d (%v)", n, err)
	}

	history, err := svc.History(ctx, "Berth B.BOL010.Hook 1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 || *history[1].Tension != 3 {
		t.Errorf("unexpected history %+v", history)
	}

	batches, err := svc.Batches(ctx, 10)
	if err != nil || len(batches) != 3 {
		t.Errorf("expected 3 batches, got %d (%v)", len(batches), err)
	}
}

func TestHistoryUnknownHook(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.History(context.Background(), "Berth Z.BOL999.Hook 1", 10)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIngestMissingNames(t *testing.T) {
	svc, _ := newTestService(t, nil)
	port := &domain.PortRecord{Berths: []domain.BerthRecord{{
		Bollards: []domain.BollardRecord{{Hooks: []domain.HookRecord{{Name: "Hook 1"}}}},
	}}}

	if _, err := svc.Ingest(context.Background(), port); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.Monitor().Hook(monitor.HookKey(monitor.UnknownBerth, monitor.UnknownBollard, "Hook 1")); !ok {
		t.Error("expected hook keyed by unknown names")
	}
}
