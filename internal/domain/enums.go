package domain

// HooksPerBollard is the fixed number of hooks mounted on every bollard
const HooksPerBollard = 3

// AttachedLine is the mooring line type a hook is bearing
type AttachedLine string

const (
	LineBreast AttachedLine = "BREAST"
	LineHead   AttachedLine = "HEAD"
	LineSpring AttachedLine = "SPRING"
	LineStern  AttachedLine = "STERN"
)

// Valid reports whether l is one of the known line types
func (l AttachedLine) Valid() bool {
	switch l {
	case LineBreast, LineHead, LineSpring, LineStern:
		return true
	}
	return false
}

// Ptr returns a pointer to a copy of l
func (l AttachedLine) Ptr() *AttachedLine {
	return &l
}

// DistanceStatus reports whether a radar is producing readings
type DistanceStatus string

const (
	DistanceActive   DistanceStatus = "ACTIVE"
	DistanceInactive DistanceStatus = "INACTIVE"
)

// Valid reports whether s is a known radar status
func (s DistanceStatus) Valid() bool {
	return s == DistanceActive || s == DistanceInactive
}

// HookState is the lifecycle state of a hook.
//
// A hook is created in one of these states and never leaves it.
type HookState string

const (
	HookActive   HookState = "active"   // bearing a line, tension updated on every tick
	HookInactive HookState = "inactive" // no line, no tension
	HookFaulted  HookState = "faulted"  // reporting a fault instead of a reading
)

// Valid reports whether s is a known hook state
func (s HookState) Valid() bool {
	switch s {
	case HookActive, HookInactive, HookFaulted:
		return true
	}
	return false
}
