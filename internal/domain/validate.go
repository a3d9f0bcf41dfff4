package domain

import (
	"fmt"
	"regexp"
)

// Bounds of the exported contract
const (
	MaxBerths        = 8
	MaxBollardCount  = 40 // exclusive
	MaxHookCount     = 60 // exclusive
	MaxTension       = 99 // exclusive
	MaxShipDistance  = 100.0
	MaxDistanceDelta = 100.0
)

var (
	vesselIDPattern    = regexp.MustCompile(`^[0-9]{4}$`)
	radarNamePattern   = regexp.MustCompile(`^B[A-Z]RD[0-9]$`)
	hookNamePattern    = regexp.MustCompile(`^Hook [1-9][0-9]?$`)
	bollardNamePattern = regexp.MustCompile(`^BOL[0-9]{3}$`)
	berthNamePattern   = regexp.MustCompile(`^Berth [A-Z]$`)
)

// HookName returns the exported name of hook number n
func HookName(n int) string {
	return fmt.Sprintf("Hook %d", n)
}

// BerthName returns the exported name of the berth with the given code letter
func BerthName(code byte) string {
	return fmt.Sprintf("Berth %c", code)
}

// RadarName returns the exported name of radar n on the berth with the given code letter
func RadarName(code byte, n int) string {
	return fmt.Sprintf("B%cRD%d", code, n)
}

// Validate checks the whole tree and returns the first violation found
func (p *PortRecord) Validate() error {
	if p.Name == "" {
		return violation("name", p.Name, "a non-empty port name")
	}
	if len(p.Berths) < 1 || len(p.Berths) > MaxBerths {
		return violation("berths", len(p.Berths), fmt.Sprintf("between 1 and %d berths", MaxBerths))
	}
	for i := range p.Berths {
		if err := p.Berths[i].validate(fmt.Sprintf("berths[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *BerthRecord) validate(path string) error {
	if !berthNamePattern.MatchString(b.Name) {
		return violation(path+".name", b.Name, "pattern "+berthNamePattern.String())
	}
	if b.BollardCount <= 0 || b.BollardCount >= MaxBollardCount {
		return violation(path+".bollardCount", b.BollardCount, fmt.Sprintf("value in (0,%d)", MaxBollardCount))
	}
	if b.HookCount <= 0 || b.HookCount >= MaxHookCount {
		return violation(path+".hookCount", b.HookCount, fmt.Sprintf("value in (0,%d)", MaxHookCount))
	}
	if b.HookCount != b.BollardCount*HooksPerBollard {
		return violation(path+".hookCount", b.HookCount, fmt.Sprintf("bollardCount*%d = %d", HooksPerBollard, b.BollardCount*HooksPerBollard))
	}
	if b.Ship.Name == "" {
		return violation(path+".ship.name", b.Ship.Name, "a non-empty ship name")
	}
	if !vesselIDPattern.MatchString(b.Ship.VesselID) {
		return violation(path+".ship.vesselId", b.Ship.VesselID, "pattern "+vesselIDPattern.String())
	}
	for i := range b.Radars {
		if err := b.Radars[i].validate(fmt.Sprintf("%s.radars[%d]", path, i)); err != nil {
			return err
		}
	}
	if len(b.Bollards) != b.BollardCount {
		return violation(path+".bollards", len(b.Bollards), fmt.Sprintf("bollardCount = %d bollards", b.BollardCount))
	}
	for i := range b.Bollards {
		if err := b.Bollards[i].validate(fmt.Sprintf("%s.bollards[%d]", path, i), i+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *RadarRecord) validate(path string) error {
	if !radarNamePattern.MatchString(r.Name) {
		return violation(path+".name", r.Name, "pattern "+radarNamePattern.String())
	}
	switch r.DistanceStatus {
	case DistanceActive:
		if r.ShipDistance == nil {
			return violation(path+".shipDistance", nil, "a distance on an active radar")
		}
		if r.DistanceChange == nil {
			return violation(path+".distanceChange", nil, "a change on an active radar")
		}
	case DistanceInactive:
		if r.ShipDistance != nil {
			return violation(path+".shipDistance", *r.ShipDistance, "null on an inactive radar")
		}
		if r.DistanceChange != nil {
			return violation(path+".distanceChange", *r.DistanceChange, "null on an inactive radar")
		}
	default:
		return violation(path+".distanceStatus", r.DistanceStatus, "one of ACTIVE, INACTIVE")
	}
	if d := r.ShipDistance; d != nil && (*d < 0 || *d >= MaxShipDistance) {
		return violation(path+".shipDistance", *d, "value in [0,100)")
	}
	if c := r.DistanceChange; c != nil && (*c <= -MaxDistanceDelta || *c >= MaxDistanceDelta) {
		return violation(path+".distanceChange", *c, "value in (-100,100)")
	}
	return nil
}

// validate checks a bollard at 1-based position; its hooks must be numbered 3k-2..3k
func (b *BollardRecord) validate(path string, position int) error {
	if !bollardNamePattern.MatchString(b.Name) {
		return violation(path+".name", b.Name, "pattern "+bollardNamePattern.String())
	}
	if len(b.Hooks) != HooksPerBollard {
		return violation(path+".hooks", len(b.Hooks), fmt.Sprintf("exactly %d hooks", HooksPerBollard))
	}
	first := (position-1)*HooksPerBollard + 1
	for i := range b.Hooks {
		hookPath := fmt.Sprintf("%s.hooks[%d]", path, i)
		if want := HookName(first + i); b.Hooks[i].Name != want {
			return violation(hookPath+".name", b.Hooks[i].Name, want)
		}
		if err := b.Hooks[i].validate(hookPath); err != nil {
			return err
		}
	}
	return nil
}

func (h *HookRecord) validate(path string) error {
	if !hookNamePattern.MatchString(h.Name) {
		return violation(path+".name", h.Name, "pattern "+hookNamePattern.String())
	}
	if h.AttachedLine != nil && !h.AttachedLine.Valid() {
		return violation(path+".attachedLine", *h.AttachedLine, "one of BREAST, HEAD, SPRING, STERN or null")
	}
	if h.Tension != nil {
		if *h.Tension < 0 || *h.Tension >= MaxTension {
			return violation(path+".tension", *h.Tension, fmt.Sprintf("value in [0,%d)", MaxTension))
		}
		if h.AttachedLine == nil {
			return violation(path+".tension", *h.Tension, "null on a hook without an attached line")
		}
	}
	if h.Tension == nil && h.AttachedLine != nil && !h.Faulted {
		return violation(path+".tension", nil, "a tension on a hook with an attached line")
	}
	return nil
}

func violation(path string, value any, constraint string) *SchemaViolation {
	return &SchemaViolation{Path: path, Value: value, Constraint: constraint}
}
