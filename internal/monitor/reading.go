// Package monitor folds flattened hook readings into per-hook running state
// and flags hooks whose tension nears their rated maximum.
package monitor

import (
	"time"

	"mooring/internal/domain"
)

// Names used when a payload omits a parent name
const (
	UnknownPort    = "UNKNOWN_PORT"
	UnknownBerth   = "UNKNOWN_BERTH"
	UnknownBollard = "UNKNOWN_BOLLARD"
)

// Reading is one hook's values from one received snapshot
type Reading struct {
	Timestamp    time.Time            `json:"timestamp"`
	Port         string               `json:"port"`
	Berth        string               `json:"berth"`
	Bollard      string               `json:"bollard"`
	Hook         string               `json:"hook"`
	Tension      *int                 `json:"tension"`
	Faulted      bool                 `json:"faulted"`
	AttachedLine *domain.AttachedLine `json:"attachedLine"`
}

// Key identifies the hook across snapshots as "<berth>.<bollard>.<hook>"
func (r Reading) Key() string {
	return HookKey(r.Berth, r.Bollard, r.Hook)
}

// HookKey joins the names that identify a hook
func HookKey(berth, bollard, hook string) string {
	return berth + "." + bollard + "." + hook
}

// Flatten turns a snapshot into one reading per hook, in document order
func Flatten(port *domain.PortRecord, ts time.Time) []Reading {
	portName := orDefault(port.Name, UnknownPort)

	var readings []Reading
	for _, berth := range port.Berths {
		berthName := orDefault(berth.Name, UnknownBerth)
		for _, bollard := range berth.Bollards {
			bollardName := orDefault(bollard.Name, UnknownBollard)
			for _, hook := range bollard.Hooks {
				readings = append(readings, Reading{
					Timestamp:    ts,
					Port:         portName,
					Berth:        berthName,
					Bollard:      bollardName,
					Hook:         hook.Name,
					Tension:      hook.Tension,
					Faulted:      hook.Faulted,
					AttachedLine: hook.AttachedLine,
				})
			}
		}
	}
	return readings
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
