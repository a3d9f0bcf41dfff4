package sim

import (
	"math"
	"math/rand/v2"

	"mooring/internal/domain"
)

// Radar simulates a berth radar measuring distance to the ship
type Radar struct {
	rnd  *rand.Rand
	dist Gaussian

	name     string
	active   bool
	distance *float64
	change   *float64
}

// newRadar creates a radar; an active radar takes an initial reading
func newRadar(rnd *rand.Rand, dists Distributions, name string, active bool) *Radar {
	r := &Radar{
		rnd:    rnd,
		dist:   dists.RadarDistance,
		name:   name,
		active: active,
	}
	if active {
		distance := math.Abs(dists.RadarInitialDistance.Sample(rnd))
		change := math.Abs(dists.RadarInitialChange.Sample(rnd))
		r.distance = &distance
		r.change = &change
	}
	return r
}

// Name returns the radar name
func (r *Radar) Name() string { return r.name }

// Active reports whether the radar produces readings
func (r *Radar) Active() bool { return r.active }

// Update takes a new reading and returns distance and change.
// Both are nil for an inactive radar.
func (r *Radar) Update() (*float64, *float64) {
	if r.active {
		distance := math.Abs(r.dist.Sample(r.rnd))
		change := math.Abs(*r.distance - distance)
		r.distance = &distance
		r.change = &change
	}
	return copyFloat(r.distance), copyFloat(r.change)
}

// Record returns the current reading
func (r *Radar) Record() domain.RadarRecord {
	status := domain.DistanceInactive
	if r.active {
		status = domain.DistanceActive
	}
	return domain.RadarRecord{
		Name:           r.name,
		ShipDistance:   copyFloat(r.distance),
		DistanceChange: copyFloat(r.change),
		DistanceStatus: status,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
