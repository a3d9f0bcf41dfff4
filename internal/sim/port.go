package sim

import (
	"fmt"

	"mooring/internal/domain"
)

// BerthAlphabet is indexed by berth number to get the berth code. Numbering
// starts at 1, so the first berth of a port is "Berth B".
const BerthAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxBerths is the upper bound of the sampled berth count
const MaxBerths = 8

// Port simulates a whole port
type Port struct {
	name   string
	berths []*Berth
}

// Name returns the port name
func (p *Port) Name() string { return p.name }

// Berths returns the berths in construction order
func (p *Port) Berths() []*Berth { return p.berths }

// Update cascades to every berth
func (p *Port) Update() {
	for _, b := range p.berths {
		b.Update()
	}
}

// Record returns the current tree without validating it
func (p *Port) Record() *domain.PortRecord {
	rec := &domain.PortRecord{
		Name:   p.name,
		Berths: make([]domain.BerthRecord, 0, len(p.berths)),
	}
	for _, b := range p.berths {
		rec.Berths = append(rec.Berths, b.Record())
	}
	return rec
}

// Export returns the current tree, or a *domain.SchemaViolation if any field
// breaks the record contract
func (p *Port) Export() (*domain.PortRecord, error) {
	rec := p.Record()
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("export port %s: %w", p.name, err)
	}
	return rec, nil
}

// BerthCode returns the code letter of the 1-based berth number
func BerthCode(number int) (byte, error) {
	if number < 0 || number >= len(BerthAlphabet) {
		return 0, fmt.Errorf("berth number %d has no code letter", number)
	}
	return BerthAlphabet[number], nil
}
