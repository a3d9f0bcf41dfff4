package domain

// ShipRecord is the vessel moored at a berth
type ShipRecord struct {
	Name     string `json:"name" yaml:"name"`
	VesselID string `json:"vesselId" yaml:"vessel_id"`
}

// RadarRecord is a single berth radar reading
type RadarRecord struct {
	Name           string         `json:"name" yaml:"name"`
	ShipDistance   *float64       `json:"shipDistance" yaml:"ship_distance"`
	DistanceChange *float64       `json:"distanceChange" yaml:"distance_change"`
	DistanceStatus DistanceStatus `json:"distanceStatus" yaml:"distance_status"`
}

// HookRecord is a single hook reading
type HookRecord struct {
	Name         string        `json:"name" yaml:"name"`
	Tension      *int          `json:"tension" yaml:"tension"`
	Faulted      bool          `json:"faulted" yaml:"faulted"`
	AttachedLine *AttachedLine `json:"attachedLine" yaml:"attached_line"`
}

// BollardRecord is a bollard and its hooks, in hook number order
type BollardRecord struct {
	Name  string       `json:"name" yaml:"name"`
	Hooks []HookRecord `json:"hooks" yaml:"hooks"`
}

// BerthRecord is a berth with its ship, radars and bollards
type BerthRecord struct {
	Name         string          `json:"name" yaml:"name"`
	BollardCount int             `json:"bollardCount" yaml:"bollard_count"`
	HookCount    int             `json:"hookCount" yaml:"hook_count"`
	Ship         ShipRecord      `json:"ship" yaml:"ship"`
	Radars       []RadarRecord   `json:"radars" yaml:"radars"`
	Bollards     []BollardRecord `json:"bollards" yaml:"bollards"`
}

// PortRecord is the root of an exported snapshot
type PortRecord struct {
	Name   string        `json:"name" yaml:"name"`
	Berths []BerthRecord `json:"berths" yaml:"berths"`
}

// HookCount returns the total number of hooks across all berths
func (p *PortRecord) HookCount() int {
	n := 0
	for _, berth := range p.Berths {
		for _, bollard := range berth.Bollards {
			n += len(bollard.Hooks)
		}
	}
	return n
}
