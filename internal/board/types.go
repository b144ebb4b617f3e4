package board

// Sentinel worksite ids used in the persisted logs. Kept as-is on the wire
// so exported backups stay compatible with the existing data.
const (
	YardID = "pateo"
	RainID = "chuva"
)

// ResourceType distinguishes people from machines.
type ResourceType string

const (
	ResourceEmployee ResourceType = "employee"
	ResourceMachine  ResourceType = "machine"
)

// Resource is a person or machine that can be allocated to a worksite.
type Resource struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Type             ResourceType `json:"type"`
	Role             string       `json:"role"`
	CostPerDay       float64      `json:"costPerDay"`
	IgnoreCost       bool         `json:"ignoreCost,omitempty"`
	IsAdministrative bool         `json:"isAdministrative,omitempty"`
	// DismissedAt hides the resource from any date >= this key while
	// keeping its history intact.
	DismissedAt string `json:"dismissedAt,omitempty"`
}

// Dismissed reports whether the resource is out of planning on the given date.
func (r Resource) Dismissed(dateKey string) bool {
	return r.DismissedAt != "" && dateKey >= r.DismissedAt
}

// Worksite is a construction site resources get allocated to.
type Worksite struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Visible bool   `json:"visible,omitempty"` // legacy default; see VisibilityLog
}

// MaintenanceEntry is one explicit maintenance toggle for a resource on a date.
type MaintenanceEntry struct {
	InMaintenance bool   `json:"inMaintenance"`
	Reason        string `json:"reason,omitempty"`
}

// PartialSegment is one slice of a resource's split working day.
type PartialSegment struct {
	WorksiteID       string  `json:"worksiteId"`
	Hours            float64 `json:"hours"`
	EarlyDismissal   bool    `json:"earlyDismissal,omitempty"`
	MaintenanceAfter bool    `json:"maintenanceAfter,omitempty"`
}

// OvertimeEntry records extra hours worked on a date.
type OvertimeEntry struct {
	Hours      float64 `json:"hours"`
	Multiplier float64 `json:"multiplier"` // 1.5 for 50%, 2.0 for 100%
}

// FuelEntry records fuel and oil consumed by a resource on a date.
type FuelEntry struct {
	FuelLiters float64 `json:"fuelLiters"`
	OilLiters  float64 `json:"oilLiters"`
	Notes      string  `json:"notes,omitempty"`
}

// DayMetadata carries per-date planning state.
type DayMetadata struct {
	IsFinalAllocation bool   `json:"isFinalAllocation,omitempty"`
	Observations      string `json:"observations,omitempty"`
}

// Sparse per-day edit logs, all keyed by date key (YYYY-MM-DD).
type (
	// AllocationLog maps dateKey -> resourceId -> worksiteId (or sentinel).
	AllocationLog map[string]map[string]string
	// PartialAllocationLog maps dateKey -> resourceId -> ordered segments.
	PartialAllocationLog map[string]map[string][]PartialSegment
	// MaintenanceLog maps dateKey -> resourceId -> explicit toggle.
	MaintenanceLog map[string]map[string]MaintenanceEntry
	// VisibilityLog maps dateKey -> worksiteId -> explicit show/hide.
	VisibilityLog map[string]map[string]bool
	// MetadataLog maps dateKey -> day metadata.
	MetadataLog map[string]DayMetadata
	// OvertimeLog maps dateKey -> resourceId -> overtime entry.
	OvertimeLog map[string]map[string]OvertimeEntry
	// FuelLog maps dateKey -> resourceId -> fuel entry.
	FuelLog map[string]map[string]FuelEntry
	// FuelQuoteLog maps dateKey -> diesel price per liter.
	FuelQuoteLog map[string]float64
	// ResourceLinkLog maps dateKey -> machineId -> operator resourceId.
	ResourceLinkLog map[string]map[string]string
	// ObservationLog maps dateKey -> resourceId -> free-form note.
	ObservationLog map[string]map[string]string
)

// PlacementKind is the tagged form of a worksite id, so yard and rain stop
// being magic strings inside the resolvers.
type PlacementKind int

const (
	PlacementYard PlacementKind = iota
	PlacementRain
	PlacementSite
)

// Location is where a resource is, independent of for how long.
type Location struct {
	Kind       PlacementKind
	WorksiteID string // set only for PlacementSite
}

// LocationFor classifies a raw worksite id from the logs.
func LocationFor(worksiteID string) Location {
	switch worksiteID {
	case "", YardID:
		return Location{Kind: PlacementYard}
	case RainID:
		return Location{Kind: PlacementRain}
	default:
		return Location{Kind: PlacementSite, WorksiteID: worksiteID}
	}
}

// LogID returns the raw id as stored in the logs.
func (l Location) LogID() string {
	switch l.Kind {
	case PlacementYard:
		return YardID
	case PlacementRain:
		return RainID
	default:
		return l.WorksiteID
	}
}

// IsSite reports whether the location is a real worksite, i.e. neither the
// yard nor a rain stop.
func (l Location) IsSite() bool {
	return l.Kind == PlacementSite
}
