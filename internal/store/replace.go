package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"quadro-backend/internal/board"
	"quadro-backend/internal/model"
)

// PasteDay transactionally replaces one day's allocations, observations,
// visibility, links, overtime and partial segments with the clipboard's
// contents. The clipboard's partials are expected to be pre-adjusted for the
// target day's hour ceiling.
func (s *gormStore) PasteDay(ctx context.Context, dateKey string, clip board.DayClipboard) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.AllocationEntry{},
			&model.ObservationEntry{},
			&model.VisibilityEntry{},
			&model.ResourceLink{},
			&model.OvertimeEntry{},
			&model.PartialSegmentEntry{},
		} {
			if err := tx.Where("date_key = ?", dateKey).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear day %s: %w", dateKey, err)
			}
		}

		for resourceID, worksiteID := range clip.Allocations {
			row := model.AllocationEntry{DateKey: dateKey, ResourceID: resourceID, WorksiteID: worksiteID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for resourceID, note := range clip.Observations {
			row := model.ObservationEntry{DateKey: dateKey, ResourceID: resourceID, Note: note}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for worksiteID, visible := range clip.Visibility {
			row := model.VisibilityEntry{DateKey: dateKey, WorksiteID: worksiteID, Visible: visible}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for machineID, employeeID := range clip.Links {
			row := model.ResourceLink{DateKey: dateKey, MachineID: machineID, EmployeeID: employeeID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for resourceID, entry := range clip.Overtime {
			row := model.OvertimeEntry{DateKey: dateKey, ResourceID: resourceID, Hours: entry.Hours, Multiplier: entry.Multiplier}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for resourceID, segs := range clip.Partials {
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
		}
		return nil
	})
}

// ReplaceAll swaps the entire database contents for the snapshot, used by
// restore-from-backup. The snapshot must already be validated; nothing is
// deleted unless the whole replacement can be committed.
func (s *gormStore) ReplaceAll(ctx context.Context, snap *board.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.Resource{},
			&model.Worksite{},
			&model.AllocationEntry{},
			&model.PartialSegmentEntry{},
			&model.MaintenanceToggle{},
			&model.VisibilityEntry{},
			&model.DayMetadata{},
			&model.OvertimeEntry{},
			&model.FuelEntry{},
			&model.FuelQuote{},
			&model.ResourceLink{},
			&model.ObservationEntry{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear table during restore: %w", err)
			}
		}

		for _, res := range snap.Resources {
			if err := tx.Create(resourceRow(res)).Error; err != nil {
				return err
			}
		}
		for _, ws := range snap.Worksites {
			if err := tx.Create(worksiteRow(ws)).Error; err != nil {
				return err
			}
		}
		for dateKey, day := range snap.Allocations {
			for resourceID, worksiteID := range day {
				row := model.AllocationEntry{DateKey: dateKey, ResourceID: resourceID, WorksiteID: worksiteID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, day := range snap.Partials {
			for resourceID, segs := range day {
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
			}
		}
		for dateKey, day := range snap.Maintenance {
			for resourceID, entry := range day {
				row := model.MaintenanceToggle{
					DateKey:       dateKey,
					ResourceID:    resourceID,
					InMaintenance: entry.InMaintenance,
					Reason:        entry.Reason,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, day := range snap.Visibility {
			for worksiteID, visible := range day {
				row := model.VisibilityEntry{DateKey: dateKey, WorksiteID: worksiteID, Visible: visible}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, meta := range snap.Metadata {
			row := model.DayMetadata{
				DateKey:           dateKey,
				IsFinalAllocation: meta.IsFinalAllocation,
				Observations:      meta.Observations,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for dateKey, day := range snap.Overtime {
			for resourceID, entry := range day {
				row := model.OvertimeEntry{DateKey: dateKey, ResourceID: resourceID, Hours: entry.Hours, Multiplier: entry.Multiplier}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, day := range snap.Fuel {
			for resourceID, entry := range day {
				row := model.FuelEntry{
					DateKey:    dateKey,
					ResourceID: resourceID,
					FuelLiters: entry.FuelLiters,
					OilLiters:  entry.OilLiters,
					Notes:      entry.Notes,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, price := range snap.FuelQuotes {
			row := model.FuelQuote{DateKey: dateKey, PricePerLiter: price}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for dateKey, day := range snap.Links {
			for machineID, employeeID := range day {
				row := model.ResourceLink{DateKey: dateKey, MachineID: machineID, EmployeeID: employeeID}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		for dateKey, day := range snap.Observations {
			for resourceID, note := range day {
				row := model.ObservationEntry{DateKey: dateKey, ResourceID: resourceID, Note: note}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
