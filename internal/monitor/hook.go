package monitor

import (
	"time"

	"mooring/internal/domain"
)

// Sample is one point of a hook's tension history
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Tension   *int      `json:"tension"`
}

// TrackedHook is the running state of one hook across snapshots
type TrackedHook struct {
	Name       string
	Bollard    string
	Berth      string
	Port       string
	MaxTension int

	Current      *int
	Previous     *int
	Faulted      bool
	AttachedLine *domain.AttachedLine
	UpdatedAt    time.Time

	history      []Sample
	historyLimit int
}

// NewTrackedHook creates an empty tracked hook for the reading's hook
func NewTrackedHook(r Reading, maxTension, historyLimit int) *TrackedHook {
	return &TrackedHook{
		Name:         r.Hook,
		Bollard:      r.Bollard,
		Berth:        r.Berth,
		Port:         r.Port,
		MaxTension:   maxTension,
		historyLimit: historyLimit,
	}
}

// Update shifts current to previous and records the reading
func (h *TrackedHook) Update(r Reading) {
	h.Previous = h.Current
	h.Current = r.Tension
	h.Faulted = r.Faulted
	h.AttachedLine = r.AttachedLine
	h.UpdatedAt = r.Timestamp

	h.history = append(h.history, Sample{Timestamp: r.Timestamp, Tension: r.Tension})
	if h.historyLimit > 0 && len(h.history) > h.historyLimit {
		h.history = h.history[len(h.history)-h.historyLimit:]
	}
}

// History returns a copy of the retained samples, oldest first
func (h *TrackedHook) History() []Sample {
	return append([]Sample(nil), h.history...)
}

// TensionPercent returns current tension as a percentage of MaxTension
func (h *TrackedHook) TensionPercent() (float64, bool) {
	if h.Current == nil || h.MaxTension <= 0 {
		return 0, false
	}
	return float64(*h.Current) / float64(h.MaxTension) * 100, true
}

// RateOfChange returns current minus previous tension, zero if either is missing
func (h *TrackedHook) RateOfChange() int {
	if h.Current == nil || h.Previous == nil {
		return 0
	}
	return *h.Current - *h.Previous
}

// NeedsAttention reports tension at or above threshold percent
func (h *TrackedHook) NeedsAttention(threshold float64) bool {
	pct, ok := h.TensionPercent()
	return ok && pct >= threshold
}

// IsCritical reports tension at or above threshold percent
func (h *TrackedHook) IsCritical(threshold float64) bool {
	pct, ok := h.TensionPercent()
	return ok && pct >= threshold
}
