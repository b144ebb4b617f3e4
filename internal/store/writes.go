package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quadro-backend/internal/board"
	"quadro-backend/internal/model"
)

// upsert saves a row, replacing an existing one with the same primary key.
func upsert(db *gorm.DB, value any) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

func (s *gormStore) CreateResource(ctx context.Context, res board.Resource) error {
	return s.db.WithContext(ctx).Create(resourceRow(res)).Error
}

func (s *gormStore) UpdateResource(ctx context.Context, res board.Resource) error {
	result := s.db.WithContext(ctx).Model(&model.Resource{ID: res.ID}).Updates(map[string]any{
		"name":              res.Name,
		"type":              string(res.Type),
		"role":              res.Role,
		"cost_per_day":      res.CostPerDay,
		"ignore_cost":       res.IgnoreCost,
		"is_administrative": res.IsAdministrative,
		"dismissed_at":      res.DismissedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) DeleteResource(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Resource{}, "id = ?", id).Error
}

func (s *gormStore) CreateWorksite(ctx context.Context, ws board.Worksite) error {
	return s.db.WithContext(ctx).Create(worksiteRow(ws)).Error
}

func (s *gormStore) UpdateWorksite(ctx context.Context, ws board.Worksite) error {
	result := s.db.WithContext(ctx).Model(&model.Worksite{ID: ws.ID}).Updates(map[string]any{
		"name":    ws.Name,
		"color":   ws.Color,
		"visible": ws.Visible,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWorksite removes the worksite and every full-day allocation that
// pointed at it, across the whole history.
func (s *gormStore) DeleteWorksite(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Worksite{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete worksite %s: %w", id, err)
		}
		if err := tx.Where("worksite_id = ?", id).Delete(&model.AllocationEntry{}).Error; err != nil {
			return fmt.Errorf("failed to purge allocations for worksite %s: %w", id, err)
		}
		return nil
	})
}

func (s *gormStore) SetAllocation(ctx context.Context, dateKey, resourceID, worksiteID string) error {
	return upsert(s.db.WithContext(ctx), &model.AllocationEntry{
		DateKey:    dateKey,
		ResourceID: resourceID,
		WorksiteID: worksiteID,
	})
}

func (s *gormStore) ClearAllocation(ctx context.Context, dateKey, resourceID string) error {
	return s.db.WithContext(ctx).
		Where("date_key = ? AND resource_id = ?", dateKey, resourceID).
		Delete(&model.AllocationEntry{}).Error
}

// ReplacePartials swaps a resource's whole segment sequence for a date.
func (s *gormStore) ReplacePartials(ctx context.Context, dateKey, resourceID string, segs []board.PartialSegment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date_key = ? AND resource_id = ?", dateKey, resourceID).
			Delete(&model.PartialSegmentEntry{}).Error; err != nil {
			return err
		}
		for i, seg := range segs {
			row := model.PartialSegmentEntry{
				DateKey:          dateKey,
				ResourceID:       resourceID,
				Seq:              i,
				WorksiteID:       seg.WorksiteID,
				Hours:            seg.Hours,
				EarlyDismissal:   seg.EarlyDismissal,
				MaintenanceAfter: seg.MaintenanceAfter,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) ClearPartials(ctx context.Context, dateKey, resourceID string) error {
	return s.db.WithContext(ctx).
		Where("date_key = ? AND resource_id = ?", dateKey, resourceID).
		Delete(&model.PartialSegmentEntry{}).Error
}

func (s *gormStore) SetMaintenance(ctx context.Context, dateKey, resourceID string, entry board.MaintenanceEntry) error {
	return upsert(s.db.WithContext(ctx), &model.MaintenanceToggle{
		DateKey:       dateKey,
		ResourceID:    resourceID,
		InMaintenance: entry.InMaintenance,
		Reason:        entry.Reason,
	})
}

func (s *gormStore) SetVisibility(ctx context.Context, dateKey, worksiteID string, visible bool) error {
	return upsert(s.db.WithContext(ctx), &model.VisibilityEntry{
		DateKey:    dateKey,
		WorksiteID: worksiteID,
		Visible:    visible,
	})
}

// SetAllVisibility writes one explicit entry per worksite for the date
// (the show/hide-all action).
func (s *gormStore) SetAllVisibility(ctx context.Context, dateKey string, worksiteIDs []string, visible bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range worksiteIDs {
			if err := upsert(tx, &model.VisibilityEntry{DateKey: dateKey, WorksiteID: id, Visible: visible}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) SetDayMetadata(ctx context.Context, dateKey string, meta board.DayMetadata) error {
	return upsert(s.db.WithContext(ctx), &model.DayMetadata{
		DateKey:           dateKey,
		IsFinalAllocation: meta.IsFinalAllocation,
		Observations:      meta.Observations,
	})
}

func (s *gormStore) SetOvertime(ctx context.Context, dateKey, resourceID string, entry board.OvertimeEntry) error {
	return upsert(s.db.WithContext(ctx), &model.OvertimeEntry{
		DateKey:    dateKey,
		ResourceID: resourceID,
		Hours:      entry.Hours,
		Multiplier: entry.Multiplier,
	})
}

func (s *gormStore) ClearOvertime(ctx context.Context, dateKey, resourceID string) error {
	return s.db.WithContext(ctx).
		Where("date_key = ? AND resource_id = ?", dateKey, resourceID).
		Delete(&model.OvertimeEntry{}).Error
}

func (s *gormStore) SetFuelEntry(ctx context.Context, dateKey, resourceID string, entry board.FuelEntry) error {
	return upsert(s.db.WithContext(ctx), &model.FuelEntry{
		DateKey:    dateKey,
		ResourceID: resourceID,
		FuelLiters: entry.FuelLiters,
		OilLiters:  entry.OilLiters,
		Notes:      entry.Notes,
	})
}

func (s *gormStore) SetFuelQuote(ctx context.Context, dateKey string, pricePerLiter float64) error {
	return upsert(s.db.WithContext(ctx), &model.FuelQuote{
		DateKey:       dateKey,
		PricePerLiter: pricePerLiter,
	})
}

func (s *gormStore) SetResourceLink(ctx context.Context, dateKey, machineID, employeeID string) error {
	return upsert(s.db.WithContext(ctx), &model.ResourceLink{
		DateKey:    dateKey,
		MachineID:  machineID,
		EmployeeID: employeeID,
	})
}

func (s *gormStore) ClearResourceLink(ctx context.Context, dateKey, machineID string) error {
	return s.db.WithContext(ctx).
		Where("date_key = ? AND machine_id = ?", dateKey, machineID).
		Delete(&model.ResourceLink{}).Error
}

func (s *gormStore) SetObservation(ctx context.Context, dateKey, resourceID, note string) error {
	if note == "" {
		return s.db.WithContext(ctx).
			Where("date_key = ? AND resource_id = ?", dateKey, resourceID).
			Delete(&model.ObservationEntry{}).Error
	}
	return upsert(s.db.WithContext(ctx), &model.ObservationEntry{
		DateKey:    dateKey,
		ResourceID: resourceID,
		Note:       note,
	})
}

func resourceRow(res board.Resource) *model.Resource {
	return &model.Resource{
		ID:               res.ID,
		Name:             res.Name,
		Type:             string(res.Type),
		Role:             res.Role,
		CostPerDay:       res.CostPerDay,
		IgnoreCost:       res.IgnoreCost,
		IsAdministrative: res.IsAdministrative,
		DismissedAt:      res.DismissedAt,
	}
}

func worksiteRow(ws board.Worksite) *model.Worksite {
	return &model.Worksite{
		ID:      ws.ID,
		Name:    ws.Name,
		Color:   ws.Color,
		Visible: ws.Visible,
	}
}
