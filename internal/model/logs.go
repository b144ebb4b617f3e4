package model

import "time"

// One table per sparse per-day edit log. Every row is addressed by its date
// key (YYYY-MM-DD) plus the entity it concerns; writes are upserts on that
// composite key.

// AllocationEntry is a full-day allocation of a resource.
type AllocationEntry struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	ResourceID string `gorm:"primaryKey;size:64"`
	WorksiteID string `gorm:"size:64;not null"` // worksite id, "pateo" or "chuva"
	UpdatedAt  time.Time
}

// PartialSegmentEntry is one slice of a resource's split day. Seq preserves
// the segment order.
type PartialSegmentEntry struct {
	DateKey          string `gorm:"primaryKey;size:10"`
	ResourceID       string `gorm:"primaryKey;size:64"`
	Seq              int    `gorm:"primaryKey"`
	WorksiteID       string `gorm:"size:64;not null"`
	Hours            float64
	EarlyDismissal   bool
	MaintenanceAfter bool
	UpdatedAt        time.Time
}

// MaintenanceToggle is one explicit maintenance status change.
type MaintenanceToggle struct {
	DateKey       string `gorm:"primaryKey;size:10"`
	ResourceID    string `gorm:"primaryKey;size:64"`
	InMaintenance bool
	Reason        string `gorm:"size:512"`
	UpdatedAt     time.Time
}

// VisibilityEntry is an explicit show/hide of a worksite on a date.
type VisibilityEntry struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	WorksiteID string `gorm:"primaryKey;size:64"`
	Visible    bool
	UpdatedAt  time.Time
}

// DayMetadata is the per-date planning state.
type DayMetadata struct {
	DateKey           string `gorm:"primaryKey;size:10"`
	IsFinalAllocation bool
	Observations      string `gorm:"size:2048"`
	UpdatedAt         time.Time
}

// OvertimeEntry records extra hours for a resource on a date.
type OvertimeEntry struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	ResourceID string `gorm:"primaryKey;size:64"`
	Hours      float64
	Multiplier float64 // 1.5 or 2.0
	UpdatedAt  time.Time
}

// FuelEntry records fuel and oil consumed by a resource on a date.
type FuelEntry struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	ResourceID string `gorm:"primaryKey;size:64"`
	FuelLiters float64
	OilLiters  float64
	Notes      string `gorm:"size:512"`
	UpdatedAt  time.Time
}

// FuelQuote is the diesel price per liter on a date.
type FuelQuote struct {
	DateKey       string  `gorm:"primaryKey;size:10"`
	PricePerLiter float64 `gorm:"not null"`
	UpdatedAt     time.Time
}

// ResourceLink pairs a machine with its operator for a date.
type ResourceLink struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	MachineID  string `gorm:"primaryKey;size:64"`
	EmployeeID string `gorm:"size:64;not null"`
	UpdatedAt  time.Time
}

// ObservationEntry is a free-form note on a resource for a date.
type ObservationEntry struct {
	DateKey    string `gorm:"primaryKey;size:10"`
	ResourceID string `gorm:"primaryKey;size:64"`
	Note       string `gorm:"size:2048"`
	UpdatedAt  time.Time
}
