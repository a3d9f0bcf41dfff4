package sim

import (
	"mooring/internal/domain"
)

// Berth simulates a berth with its moored ship
type Berth struct {
	code         byte
	bollardCount int
	hookCount    int
	ship         domain.ShipRecord
	radars       []*Radar
	bollards     []*Bollard
}

// Code returns the berth code letter
func (b *Berth) Code() byte { return b.code }

// Name returns the berth name, e.g. "Berth B"
func (b *Berth) Name() string { return domain.BerthName(b.code) }

// BollardCount returns the number of bollards
func (b *Berth) BollardCount() int { return b.bollardCount }

// HookCount returns the number of hooks, always three per bollard
func (b *Berth) HookCount() int { return b.hookCount }

// Ship returns the moored ship
func (b *Berth) Ship() domain.ShipRecord { return b.ship }

// Radars returns the radars in number order
func (b *Berth) Radars() []*Radar { return b.radars }

// Bollards returns the bollards in position order
func (b *Berth) Bollards() []*Bollard { return b.bollards }

// Update cascades to radars, then bollards
func (b *Berth) Update() {
	for _, r := range b.radars {
		r.Update()
	}
	for _, bl := range b.bollards {
		bl.Update()
	}
}

// Record returns the current readings of the berth
func (b *Berth) Record() domain.BerthRecord {
	rec := domain.BerthRecord{
		Name:         b.Name(),
		BollardCount: b.bollardCount,
		HookCount:    b.hookCount,
		Ship:         b.ship,
		Radars:       make([]domain.RadarRecord, 0, len(b.radars)),
		Bollards:     make([]domain.BollardRecord, 0, len(b.bollards)),
	}
	for _, r := range b.radars {
		rec.Radars = append(rec.Radars, r.Record())
	}
	for _, bl := range b.bollards {
		rec.Bollards = append(rec.Bollards, bl.Record())
	}
	return rec
}
