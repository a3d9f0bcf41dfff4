package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"mooring/internal/domain"
	"mooring/internal/pool"
)

// maxCountDraws bounds the redraws of an out-of-contract bollard count
const maxCountDraws = 1000

// Engine builds simulators from one random source and one set of pools
type Engine struct {
	rnd   *rand.Rand
	names *pool.Allocator
	dist  Distributions
}

// Option configures an Engine
type Option func(*Engine)

// WithDistributions replaces the reference distributions
func WithDistributions(d Distributions) Option {
	return func(e *Engine) {
		e.dist = d
	}
}

// NewEngine creates an engine drawing from rnd and names
func NewEngine(rnd *rand.Rand, names *pool.Allocator, opts ...Option) *Engine {
	e := &Engine{
		rnd:   rnd,
		names: names,
		dist:  DefaultDistributions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRand returns a PCG source; zero seeds pick random ones
func NewRand(seed1, seed2 uint64) *rand.Rand {
	if seed1 == 0 && seed2 == 0 {
		seed1, seed2 = rand.Uint64(), rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed1, seed2))
}

// PortPlan fixes parts of a port's structure. Anything left empty is sampled.
type PortPlan struct {
	Berths []BerthPlan
}

// BerthPlan fixes parts of a berth's structure. A zero Code takes the letter
// from BerthAlphabet by berth number; nil Bollards samples the bollard count and
// structure.
type BerthPlan struct {
	Code     byte
	Bollards []BollardPlan
}

// NewPort builds a port with 1 to MaxBerths sampled berths
func (e *Engine) NewPort() (*Port, error) {
	count := e.rnd.IntN(MaxBerths) + 1
	return e.BuildPort(PortPlan{Berths: make([]BerthPlan, count)})
}

// BuildPort builds a port following plan
func (e *Engine) BuildPort(plan PortPlan) (*Port, error) {
	if len(plan.Berths) == 0 {
		return nil, errors.New("port plan has no berths")
	}
	name, err := e.names.PortName(e.rnd)
	if err != nil {
		return nil, fmt.Errorf("draw port name: %w", err)
	}

	p := &Port{name: name, berths: make([]*Berth, 0, len(plan.Berths))}
	for i, bp := range plan.Berths {
		code := bp.Code
		if code == 0 {
			if code, err = BerthCode(i + 1); err != nil {
				return nil, err
			}
		}
		berth, err := e.NewBerth(code, bp.Bollards)
		if err != nil {
			return nil, err
		}
		p.berths = append(p.berths, berth)
	}
	return p, nil
}

// NewBerth builds a berth. A nil structure samples the bollard count and
// structure; otherwise bollards are built exactly as planned, with a zero
// Number standing for the bollard's position in structure.
func (e *Engine) NewBerth(code byte, structure []BollardPlan) (*Berth, error) {
	if code < 'A' || code > 'Z' {
		return nil, fmt.Errorf("berth code %q is not an uppercase letter", code)
	}

	count := len(structure)
	if structure == nil {
		var err error
		if count, err = e.sampleBollardCount(); err != nil {
			return nil, fmt.Errorf("build berth %c: %w", code, err)
		}
	}
	b := &Berth{
		code:         code,
		bollardCount: count,
		hookCount:    count * domain.HooksPerBollard,
	}

	shipName, err := e.names.ShipName(e.rnd)
	if err != nil {
		return nil, fmt.Errorf("build berth %c: draw ship name: %w", code, err)
	}
	vesselID, err := e.names.VesselID(e.rnd)
	if err != nil {
		return nil, fmt.Errorf("build berth %c: draw vessel id: %w", code, err)
	}
	b.ship = domain.ShipRecord{Name: shipName, VesselID: vesselID}

	radarCount := e.sampleRadarCount()
	active := e.dist.RadarActive.SampleN(e.rnd, radarCount)
	for i := range radarCount {
		b.radars = append(b.radars, e.NewRadar(domain.RadarName(code, i+1), active[i]))
	}

	if structure == nil {
		structure = e.SampleBollardStructure(count)
	}
	for i, plan := range structure {
		if plan.Number == 0 {
			plan.Number = i + 1
		}
		bollard, err := e.NewBollard(plan)
		if err != nil {
			return nil, fmt.Errorf("build berth %c: %w", code, err)
		}
		b.bollards = append(b.bollards, bollard)
	}
	return b, nil
}

// NewBollard draws a bollard name and builds the three hooks numbered from
// the bollard's position
func (e *Engine) NewBollard(plan BollardPlan) (*Bollard, error) {
	name, err := e.names.BollardName(e.rnd)
	if err != nil {
		return nil, fmt.Errorf("draw bollard name: %w", err)
	}
	b := &Bollard{
		number: plan.Number,
		name:   name,
		hooks:  make([]*Hook, 0, domain.HooksPerBollard),
	}
	first := FirstHookNumber(plan.Number)
	for i, state := range plan.HookStates {
		b.hooks = append(b.hooks, e.NewHook(first+i, state, plan.Line))
	}
	return b, nil
}

// NewHook builds a hook; line is only kept by an active hook
func (e *Engine) NewHook(number int, state domain.HookState, line domain.AttachedLine) *Hook {
	return newHook(e.rnd, e.dist.HookTension, number, state, line)
}

// NewRadar builds a radar
func (e *Engine) NewRadar(name string, active bool) *Radar {
	return newRadar(e.rnd, e.dist, name, active)
}

// sampleRadarCount picks uniformly from RadarCounts
func (e *Engine) sampleRadarCount() int {
	return e.dist.RadarCounts[e.rnd.IntN(len(e.dist.RadarCounts))]
}

// sampleBollardCount draws ceil(N(mean, stddev)), redrawing counts the
// exported contract cannot hold
func (e *Engine) sampleBollardCount() (int, error) {
	for range maxCountDraws {
		n := int(math.Ceil(e.dist.BollardCount.Sample(e.rnd)))
		if n > 0 && n < domain.MaxBollardCount && n*domain.HooksPerBollard < domain.MaxHookCount {
			return n, nil
		}
	}
	return 0, fmt.Errorf("no bollard count within contract after %d draws", maxCountDraws)
}
