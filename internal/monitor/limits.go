package monitor

// Level classifies a tension against a berth's limits
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
	LevelSlack  Level = "SLACK" // below the low limit
	LevelNone   Level = ""      // no tension reported
)

// Limits are the tension thresholds of one berth
type Limits struct {
	High   int `json:"highTension" yaml:"high_tension"`
	Medium int `json:"mediumTension" yaml:"medium_tension"`
	Low    int `json:"lowTension" yaml:"low_tension"`
}

// DefaultBerth keys the limits used for berths without their own entry
const DefaultBerth = "default"

// TensionLimits maps berth names to their limits
type TensionLimits map[string]Limits

// DefaultTensionLimits returns the reference limits
func DefaultTensionLimits() TensionLimits {
	return TensionLimits{
		DefaultBerth: {High: 24, Medium: 14, Low: 4},
		"Berth A":    {High: 25, Medium: 15, Low: 5},
	}
}

// For returns the limits of berth, falling back to the default entry
func (t TensionLimits) For(berth string) Limits {
	if l, ok := t[berth]; ok {
		return l
	}
	return t[DefaultBerth]
}

// Level classifies tension on berth
func (t TensionLimits) Level(berth string, tension *int) Level {
	if tension == nil {
		return LevelNone
	}
	l := t.For(berth)
	switch v := *tension; {
	case v >= l.High:
		return LevelHigh
	case v >= l.Medium:
		return LevelMedium
	case v >= l.Low:
		return LevelLow
	default:
		return LevelSlack
	}
}
