package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quadro-backend/internal/board"
	"quadro-backend/internal/model"
)

// Store defines the interface for all database operations. The core only
// ever reads whole-log snapshots; every write replaces one entry by its
// (date, entity) key.
type Store interface {
	DB() *gorm.DB

	LoadSnapshot(ctx context.Context) (*board.Snapshot, error)

	CreateResource(ctx context.Context, res board.Resource) error
	UpdateResource(ctx context.Context, res board.Resource) error
	DeleteResource(ctx context.Context, id string) error
	CreateWorksite(ctx context.Context, ws board.Worksite) error
	UpdateWorksite(ctx context.Context, ws board.Worksite) error
	DeleteWorksite(ctx context.Context, id string) error

	SetAllocation(ctx context.Context, dateKey, resourceID, worksiteID string) error
	ClearAllocation(ctx context.Context, dateKey, resourceID string) error
	ReplacePartials(ctx context.Context, dateKey, resourceID string, segs []board.PartialSegment) error
	ClearPartials(ctx context.Context, dateKey, resourceID string) error
	SetMaintenance(ctx context.Context, dateKey, resourceID string, entry board.MaintenanceEntry) error
	SetVisibility(ctx context.Context, dateKey, worksiteID string, visible bool) error
	SetAllVisibility(ctx context.Context, dateKey string, worksiteIDs []string, visible bool) error
	SetDayMetadata(ctx context.Context, dateKey string, meta board.DayMetadata) error
	SetOvertime(ctx context.Context, dateKey, resourceID string, entry board.OvertimeEntry) error
	ClearOvertime(ctx context.Context, dateKey, resourceID string) error
	SetFuelEntry(ctx context.Context, dateKey, resourceID string, entry board.FuelEntry) error
	SetFuelQuote(ctx context.Context, dateKey string, pricePerLiter float64) error
	SetResourceLink(ctx context.Context, dateKey, machineID, employeeID string) error
	ClearResourceLink(ctx context.Context, dateKey, machineID string) error
	SetObservation(ctx context.Context, dateKey, resourceID, note string) error

	PasteDay(ctx context.Context, dateKey string, clip board.DayClipboard) error
	ReplaceAll(ctx context.Context, snap *board.Snapshot) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// LoadSnapshot reads every log into the in-memory form the resolvers work
// on.
func (s *gormStore) LoadSnapshot(ctx context.Context) (*board.Snapshot, error) {
	snap := &board.Snapshot{GeneratedAt: time.Now()}
	snap.Normalize()
	db := s.db.WithContext(ctx)

	var resources []model.Resource
	if err := db.Order("name").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	for _, r := range resources {
		snap.Resources = append(snap.Resources, board.Resource{
			ID:               r.ID,
			Name:             r.Name,
			Type:             board.ResourceType(r.Type),
			Role:             r.Role,
			CostPerDay:       r.CostPerDay,
			IgnoreCost:       r.IgnoreCost,
			IsAdministrative: r.IsAdministrative,
			DismissedAt:      r.DismissedAt,
		})
	}

	var worksites []model.Worksite
	if err := db.Order("created_at").Find(&worksites).Error; err != nil {
		return nil, fmt.Errorf("failed to load worksites: %w", err)
	}
	for _, w := range worksites {
		snap.Worksites = append(snap.Worksites, board.Worksite{
			ID:      w.ID,
			Name:    w.Name,
			Color:   w.Color,
			Visible: w.Visible,
		})
	}

	var allocations []model.AllocationEntry
	if err := db.Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}
	for _, a := range allocations {
		day := snap.Allocations[a.DateKey]
		if day == nil {
			day = make(map[string]string)
			snap.Allocations[a.DateKey] = day
		}
		day[a.ResourceID] = a.WorksiteID
	}

	var partials []model.PartialSegmentEntry
	if err := db.Order("date_key, resource_id, seq").Find(&partials).Error; err != nil {
		return nil, fmt.Errorf("failed to load partial allocations: %w", err)
	}
	for _, p := range partials {
		day := snap.Partials[p.DateKey]
		if day == nil {
			day = make(map[string][]board.PartialSegment)
			snap.Partials[p.DateKey] = day
		}
		day[p.ResourceID] = append(day[p.ResourceID], board.PartialSegment{
			WorksiteID:       p.WorksiteID,
			Hours:            p.Hours,
			EarlyDismissal:   p.EarlyDismissal,
			MaintenanceAfter: p.MaintenanceAfter,
		})
	}

	var toggles []model.MaintenanceToggle
	if err := db.Find(&toggles).Error; err != nil {
		return nil, fmt.Errorf("failed to load maintenance history: %w", err)
	}
	for _, m := range toggles {
		day := snap.Maintenance[m.DateKey]
		if day == nil {
			day = make(map[string]board.MaintenanceEntry)
			snap.Maintenance[m.DateKey] = day
		}
		day[m.ResourceID] = board.MaintenanceEntry{InMaintenance: m.InMaintenance, Reason: m.Reason}
	}

	var visibility []model.VisibilityEntry
	if err := db.Find(&visibility).Error; err != nil {
		return nil, fmt.Errorf("failed to load worksite visibility: %w", err)
	}
	for _, v := range visibility {
		day := snap.Visibility[v.DateKey]
		if day == nil {
			day = make(map[string]bool)
			snap.Visibility[v.DateKey] = day
		}
		day[v.WorksiteID] = v.Visible
	}

	var metadata []model.DayMetadata
	if err := db.Find(&metadata).Error; err != nil {
		return nil, fmt.Errorf("failed to load day metadata: %w", err)
	}
	for _, m := range metadata {
		snap.Metadata[m.DateKey] = board.DayMetadata{
			IsFinalAllocation: m.IsFinalAllocation,
			Observations:      m.Observations,
		}
	}

	var overtime []model.OvertimeEntry
	if err := db.Find(&overtime).Error; err != nil {
		return nil, fmt.Errorf("failed to load overtime: %w", err)
	}
	for _, o := range overtime {
		day := snap.Overtime[o.DateKey]
		if day == nil {
			day = make(map[string]board.OvertimeEntry)
			snap.Overtime[o.DateKey] = day
		}
		day[o.ResourceID] = board.OvertimeEntry{Hours: o.Hours, Multiplier: o.Multiplier}
	}

	var fuel []model.FuelEntry
	if err := db.Find(&fuel).Error; err != nil {
		return nil, fmt.Errorf("failed to load fuel entries: %w", err)
	}
	for _, f := range fuel {
		day := snap.Fuel[f.DateKey]
		if day == nil {
			day = make(map[string]board.FuelEntry)
			snap.Fuel[f.DateKey] = day
		}
		day[f.ResourceID] = board.FuelEntry{FuelLiters: f.FuelLiters, OilLiters: f.OilLiters, Notes: f.Notes}
	}

	var quotes []model.FuelQuote
	if err := db.Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to load fuel quotes: %w", err)
	}
	for _, q := range quotes {
		snap.FuelQuotes[q.DateKey] = q.PricePerLiter
	}

	var links []model.ResourceLink
	if err := db.Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load resource links: %w", err)
	}
	for _, l := range links {
		day := snap.Links[l.DateKey]
		if day == nil {
			day = make(map[string]string)
			snap.Links[l.DateKey] = day
		}
		day[l.MachineID] = l.EmployeeID
	}

	var observations []model.ObservationEntry
	if err := db.Find(&observations).Error; err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}
	for _, o := range observations {
		day := snap.Observations[o.DateKey]
		if day == nil {
			day = make(map[string]string)
			snap.Observations[o.DateKey] = day
		}
		day[o.ResourceID] = o.Note
	}

	return snap, nil
}
