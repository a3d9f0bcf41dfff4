package sim

import (
	"math"
	"math/rand/v2"

	"mooring/internal/domain"
)

// Hook simulates a single mooring hook
type Hook struct {
	rnd  *rand.Rand
	dist Gaussian

	number  int
	state   domain.HookState
	line    *domain.AttachedLine
	tension *int
}

// newHook creates a hook. Only an active hook keeps the line and gets an
// initial tension; inactive and faulted hooks report neither, ever.
func newHook(rnd *rand.Rand, dist Gaussian, number int, state domain.HookState, line domain.AttachedLine) *Hook {
	h := &Hook{
		rnd:    rnd,
		dist:   dist,
		number: number,
		state:  state,
	}
	if state == domain.HookActive {
		h.line = line.Ptr()
		h.Update()
	}
	return h
}

// Number returns the hook number within its berth
func (h *Hook) Number() int { return h.number }

// State returns the hook's lifecycle state
func (h *Hook) State() domain.HookState { return h.state }

// Update draws a new tension for an active hook
func (h *Hook) Update() {
	if h.state != domain.HookActive {
		return
	}
	t := int(math.Abs(math.Ceil(h.dist.Sample(h.rnd))))
	h.tension = &t
}

// Record returns the current reading
func (h *Hook) Record() domain.HookRecord {
	rec := domain.HookRecord{
		Name:    domain.HookName(h.number),
		Faulted: h.state == domain.HookFaulted,
	}
	if h.tension != nil {
		t := *h.tension
		rec.Tension = &t
	}
	if h.line != nil {
		rec.AttachedLine = h.line.Ptr()
	}
	return rec
}
