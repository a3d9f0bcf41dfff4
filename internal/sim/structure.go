package sim

import (
	"mooring/internal/domain"
)

// BollardPlan fixes the structure of one bollard
type BollardPlan struct {
	Number     int // 1-based position on the berth
	Line       domain.AttachedLine
	HookStates [domain.HooksPerBollard]domain.HookState
}

// LineFor returns the line assigned to the bollard at 1-based position out of
// total. The first matching rule wins.
func LineFor(position, total int) domain.AttachedLine {
	r := float64(position) / float64(total)
	switch {
	case r < 0.25:
		return domain.LineHead
	case r > 0.83:
		return domain.LineStern
	case r > 0.4 && r < 0.65:
		return domain.LineBreast
	default:
		return domain.LineSpring
	}
}

// SampleBollardStructure plans count bollards: lines by position, hook states
// drawn for the whole berth at once and dealt out in groups of three.
func (e *Engine) SampleBollardStructure(count int) []BollardPlan {
	states := e.dist.HookStates.SampleN(e.rnd, count*domain.HooksPerBollard)
	plans := make([]BollardPlan, count)
	for i := range plans {
		plans[i].Number = i + 1
		plans[i].Line = LineFor(i+1, count)
		copy(plans[i].HookStates[:], states[i*domain.HooksPerBollard:])
	}
	return plans
}
