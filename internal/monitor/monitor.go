package monitor

import (
	"sort"
	"sync"
	"time"

	"mooring/internal/domain"
)

// Defaults for a new Monitor
const (
	DefaultMaxTension         = 10
	DefaultAttentionThreshold = 80.0
	DefaultCriticalThreshold  = 90.0
	DefaultHistoryLimit       = 100
)

// Alert levels
const (
	AlertAttention = "ATTENTION"
	AlertCritical  = "CRITICAL"
)

// HookStatus is a point-in-time view of a tracked hook
type HookStatus struct {
	Key             string               `json:"key"`
	Port            string               `json:"port"`
	Berth           string               `json:"berth"`
	Bollard         string               `json:"bollard"`
	Hook            string               `json:"hook"`
	Tension         *int                 `json:"tension"`
	PreviousTension *int                 `json:"previousTension"`
	Percent         *float64             `json:"percent"`
	RateOfChange    int                  `json:"rateOfChange"`
	Faulted         bool                 `json:"faulted"`
	AttachedLine    *domain.AttachedLine `json:"attachedLine"`
	Level           Level                `json:"level"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// Alert is a hook over one of the thresholds
type Alert struct {
	Level string     `json:"level"`
	Hook  HookStatus `json:"hook"`
}

// Monitor tracks every hook seen, keyed by "<berth>.<bollard>.<hook>".
// It is safe for concurrent use.
type Monitor struct {
	mu    sync.RWMutex
	hooks map[string]*TrackedHook

	maxTension   int
	attention    float64
	critical     float64
	historyLimit int
	limits       TensionLimits
}

// Option configures a Monitor
type Option func(*Monitor)

// WithMaxTension sets the rated tension that percentages are taken of
func WithMaxTension(n int) Option {
	return func(m *Monitor) { m.maxTension = n }
}

// WithThresholds sets the attention and critical percentages
func WithThresholds(attention, critical float64) Option {
	return func(m *Monitor) {
		m.attention = attention
		m.critical = critical
	}
}

// WithHistoryLimit bounds the samples kept per hook
func WithHistoryLimit(n int) Option {
	return func(m *Monitor) { m.historyLimit = n }
}

// WithTensionLimits sets the per-berth limits used for Level
func WithTensionLimits(l TensionLimits) Option {
	return func(m *Monitor) { m.limits = l }
}

// New creates an empty monitor
func New(opts ...Option) *Monitor {
	m := &Monitor{
		hooks:        make(map[string]*TrackedHook),
		maxTension:   DefaultMaxTension,
		attention:    DefaultAttentionThreshold,
		critical:     DefaultCriticalThreshold,
		historyLimit: DefaultHistoryLimit,
		limits:       DefaultTensionLimits(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply folds one reading into its hook, creating it on first sight
func (m *Monitor) Apply(r Reading) HookStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(r.Key(), m.apply(r))
}

// ApplyAll folds readings in order and returns the alerts raised afterwards
// by the hooks they touched
func (m *Monitor) ApplyAll(readings []Reading) []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	touched := make(map[string]*TrackedHook, len(readings))
	for _, r := range readings {
		touched[r.Key()] = m.apply(r)
	}
	return m.alerts(touched)
}

func (m *Monitor) apply(r Reading) *TrackedHook {
	key := r.Key()
	h, ok := m.hooks[key]
	if !ok {
		h = NewTrackedHook(r, m.maxTension, m.historyLimit)
		m.hooks[key] = h
	}
	h.Update(r)
	return h
}

// Hook returns the status of the hook under key
func (m *Monitor) Hook(key string) (HookStatus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hooks[key]
	if !ok {
		return HookStatus{}, false
	}
	return m.status(key, h), true
}

// History returns the retained samples of the hook under key
func (m *Monitor) History(key string) ([]Sample, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hooks[key]
	if !ok {
		return nil, false
	}
	return h.History(), true
}

// Hooks returns every hook's status sorted by key
func (m *Monitor) Hooks() []HookStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(*TrackedHook) bool { return true })
}

// NeedingAttention returns hooks at or above threshold percent, sorted by key
func (m *Monitor) NeedingAttention(threshold float64) []HookStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(h *TrackedHook) bool { return h.NeedsAttention(threshold) })
}

// Critical returns hooks at or above threshold percent, sorted by key
func (m *Monitor) Critical(threshold float64) []HookStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(h *TrackedHook) bool { return h.IsCritical(threshold) })
}

// Alerts returns every hook over the configured attention threshold, marked
// critical when over the critical threshold too
func (m *Monitor) Alerts() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.alerts(m.hooks)
}

// Len returns the number of hooks tracked
func (m *Monitor) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// Thresholds returns the configured attention and critical percentages
func (m *Monitor) Thresholds() (attention, critical float64) {
	return m.attention, m.critical
}

func (m *Monitor) alerts(hooks map[string]*TrackedHook) []Alert {
	var alerts []Alert
	for _, key := range sortedKeys(hooks) {
		h := hooks[key]
		if !h.NeedsAttention(m.attention) {
			continue
		}
		level := AlertAttention
		if h.IsCritical(m.critical) {
			level = AlertCritical
		}
		alerts = append(alerts, Alert{Level: level, Hook: m.status(key, h)})
	}
	return alerts
}

func (m *Monitor) filter(keep func(*TrackedHook) bool) []HookStatus {
	out := make([]HookStatus, 0, len(m.hooks))
	for _, key := range sortedKeys(m.hooks) {
		if h := m.hooks[key]; keep(h) {
			out = append(out, m.status(key, h))
		}
	}
	return out
}

func (m *Monitor) status(key string, h *TrackedHook) HookStatus {
	s := HookStatus{
		Key:             key,
		Port:            h.Port,
		Berth:           h.Berth,
		Bollard:         h.Bollard,
		Hook:            h.Name,
		Tension:         h.Current,
		PreviousTension: h.Previous,
		RateOfChange:    h.RateOfChange(),
		Faulted:         h.Faulted,
		AttachedLine:    h.AttachedLine,
		Level:           m.limits.Level(h.Berth, h.Current),
		UpdatedAt:       h.UpdatedAt,
	}
	if pct, ok := h.TensionPercent(); ok {
		s.Percent = &pct
	}
	return s
}

func sortedKeys(hooks map[string]*TrackedHook) []string {
	keys := make([]string, 0, len(hooks))
	for k := range hooks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
