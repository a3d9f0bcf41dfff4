package pool

import (
	"math/rand/v2"
)

// Allocator bundles the pools one simulation draws its identifiers from
type Allocator struct {
	Ports     *Pool
	Epithets  *Pool
	BaseNames *Pool
	Bollards  *Pool
	VesselIDs *Pool
}

// NewAllocator creates an allocator with fresh copies of the default candidates
func NewAllocator() *Allocator {
	return &Allocator{
		Ports:     New(PoolPorts, WAPortNames),
		Epithets:  New(PoolEpithets, Epithets),
		BaseNames: New(PoolBaseNames, BaseNames),
		Bollards:  New(PoolBollards, BollardNames()),
		VesselIDs: New(PoolVesselIDs, VesselIDs()),
	}
}

// PortName draws a unique port name
func (a *Allocator) PortName(rnd *rand.Rand) (string, error) {
	return a.Ports.Draw(rnd)
}

// ShipName draws an epithet and a base name and joins them, e.g. "Valiant Sophia"
func (a *Allocator) ShipName(rnd *rand.Rand) (string, error) {
	epithet, err := a.Epithets.Draw(rnd)
	if err != nil {
		return "", err
	}
	base, err := a.BaseNames.Draw(rnd)
	if err != nil {
		return "", err
	}
	return epithet + " " + base, nil
}

// BollardName draws a unique bollard name
func (a *Allocator) BollardName(rnd *rand.Rand) (string, error) {
	return a.Bollards.Draw(rnd)
}

// VesselID draws a unique four digit vessel id
func (a *Allocator) VesselID(rnd *rand.Rand) (string, error) {
	return a.VesselIDs.Draw(rnd)
}
