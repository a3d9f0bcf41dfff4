package sim

import (
	"math/rand/v2"

	"mooring/internal/domain"
)

// Reference parameters. Several call sites reuse a distribution that was named
// for a different quantity; Distributions keeps each call site separate so one
// can be corrected without touching the others.
const (
	MeanTensions  = 6.0
	StdevTensions = 5.0

	MeanDistances  = 9.38
	StdevDistances = 6.73

	MeanChanges  = 0.68
	StdevChanges = 2.6

	MeanBollardCount  = 12.0
	StdevBollardCount = 2.2
)

// Gaussian is a normal distribution
type Gaussian struct {
	Mean   float64 `yaml:"mean" mapstructure:"mean"`
	StdDev float64 `yaml:"stddev" mapstructure:"stddev"`
}

// Sample draws one value
func (g Gaussian) Sample(rnd *rand.Rand) float64 {
	return rnd.NormFloat64()*g.StdDev + g.Mean
}

// Weighted is a discrete distribution over Values with relative Weights
type Weighted[T any] struct {
	Values  []T
	Weights []float64
}

// Sample draws one value. Weights need not sum to one.
func (w Weighted[T]) Sample(rnd *rand.Rand) T {
	total := 0.0
	for _, weight := range w.Weights {
		total += weight
	}
	x := rnd.Float64() * total
	for i, weight := range w.Weights {
		if x < weight {
			return w.Values[i]
		}
		x -= weight
	}
	return w.Values[len(w.Values)-1]
}

// SampleN draws n independent values
func (w Weighted[T]) SampleN(rnd *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = w.Sample(rnd)
	}
	return out
}

// Distributions holds every random shape the simulators draw from
type Distributions struct {
	// HookTension uses the change parameters
	HookTension Gaussian

	RadarInitialDistance Gaussian
	RadarInitialChange   Gaussian

	// RadarDistance uses the tension parameters
	RadarDistance Gaussian

	BollardCount Gaussian

	HookStates  Weighted[domain.HookState]
	RadarActive Weighted[bool]

	// RadarCounts is chosen from uniformly, so repeats act as weights
	RadarCounts []int
}

// DefaultDistributions returns the reference distributions
func DefaultDistributions() Distributions {
	return Distributions{
		HookTension:          Gaussian{Mean: MeanChanges, StdDev: StdevChanges},
		RadarInitialDistance: Gaussian{Mean: MeanDistances, StdDev: StdevDistances},
		RadarInitialChange:   Gaussian{Mean: MeanChanges, StdDev: StdevChanges},
		RadarDistance:        Gaussian{Mean: MeanTensions, StdDev: StdevTensions},
		BollardCount:         Gaussian{Mean: MeanBollardCount, StdDev: StdevBollardCount},
		HookStates: Weighted[domain.HookState]{
			Values:  []domain.HookState{domain.HookActive, domain.HookInactive, domain.HookFaulted},
			Weights: []float64{5, 4, 0.5},
		},
		RadarActive: Weighted[bool]{
			Values:  []bool{true, false},
			Weights: []float64{2, 1},
		},
		RadarCounts: []int{5, 6, 6, 6},
	}
}
