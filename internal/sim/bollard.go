package sim

import (
	"mooring/internal/domain"
)

// Bollard simulates a bollard and its hooks
type Bollard struct {
	number int
	name   string
	hooks  []*Hook
}

// Number returns the 1-based position on the berth
func (b *Bollard) Number() int { return b.number }

// Name returns the bollard name
func (b *Bollard) Name() string { return b.name }

// Hooks returns the hooks in number order
func (b *Bollard) Hooks() []*Hook { return b.hooks }

// Update cascades to every hook
func (b *Bollard) Update() {
	for _, h := range b.hooks {
		h.Update()
	}
}

// Record returns the current readings of the bollard
func (b *Bollard) Record() domain.BollardRecord {
	rec := domain.BollardRecord{
		Name:  b.name,
		Hooks: make([]domain.HookRecord, 0, len(b.hooks)),
	}
	for _, h := range b.hooks {
		rec.Hooks = append(rec.Hooks, h.Record())
	}
	return rec
}

// FirstHookNumber returns the number of the first hook on the bollard at position
func FirstHookNumber(position int) int {
	return (position-1)*domain.HooksPerBollard + 1
}
