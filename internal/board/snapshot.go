package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Snapshot is the complete board state: every log plus the entity lists.
// It is the unit exchanged with the persistence layer and the backup bundle
// exported to clients.
type Snapshot struct {
	Resources    []Resource           `json:"resources"`
	Worksites    []Worksite           `json:"worksites"`
	Allocations  AllocationLog        `json:"allocations"`
	Partials     PartialAllocationLog `json:"partialAllocations"`
	Maintenance  MaintenanceLog       `json:"maintenanceHistory"`
	Visibility   VisibilityLog        `json:"worksiteVisibility"`
	Metadata     MetadataLog          `json:"allocationMetadata"`
	Overtime     OvertimeLog          `json:"overtime"`
	Fuel         FuelLog              `json:"fuelData"`
	FuelQuotes   FuelQuoteLog         `json:"fuelQuotes"`
	Links        ResourceLinkLog      `json:"resourceLinks"`
	Observations ObservationLog       `json:"observations"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

// requiredBackupKeys must be present in a restore bundle before any log is
// replaced. Every other key defaults to an empty mapping.
var requiredBackupKeys = []string{"resources", "worksites", "allocations"}

// ErrInvalidBackup marks a restore bundle rejected before replacement.
var ErrInvalidBackup = errors.New("invalid backup bundle")

// ParseBackup validates and decodes a backup bundle. Bundles missing any of
// the required keys are rejected up front, so a bad restore never replaces a
// single log.
func ParseBackup(data []byte) (*Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for _, k := range requiredBackupKeys {
		if _, ok := keys[k]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidBackup, k)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	snap.Normalize()
	return &snap, nil
}

// Normalize fills absent logs with empty mappings so resolvers never see a
// nil map at the top level.
func (s *Snapshot) Normalize() {
	if s.Allocations == nil {
		s.Allocations = AllocationLog{}
	}
	if s.Partials == nil {
		s.Partials = PartialAllocationLog{}
	}
	if s.Maintenance == nil {
		s.Maintenance = MaintenanceLog{}
	}
	if s.Visibility == nil {
		s.Visibility = VisibilityLog{}
	}
	if s.Metadata == nil {
		s.Metadata = MetadataLog{}
	}
	if s.Overtime == nil {
		s.Overtime = OvertimeLog{}
	}
	if s.Fuel == nil {
		s.Fuel = FuelLog{}
	}
	if s.FuelQuotes == nil {
		s.FuelQuotes = FuelQuoteLog{}
	}
	if s.Links == nil {
		s.Links = ResourceLinkLog{}
	}
	if s.Observations == nil {
		s.Observations = ObservationLog{}
	}
}
