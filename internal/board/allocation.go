package board

// Placement is one resolved occupation of a resource on a date. A full-day
// placement has FullDay set and no hour figure; a split day yields one
// placement per partial segment, addressable by (ResourceID, SegmentIndex).
type Placement struct {
	ResourceID       string  `json:"resourceId"`
	WorksiteID       string  `json:"worksiteId"`
	Hours            float64 `json:"hours,omitempty"`
	FullDay          bool    `json:"fullDay"`
	SegmentIndex     int     `json:"segmentIndex"`
	MaintenanceAfter bool    `json:"maintenanceAfter,omitempty"`
}

// ResolvePlacements answers "where is every resource on this date, and for
// how long". Dismissed resources are skipped; a non-empty partial sequence
// overrides the full-day entry; everything else falls back to the full-day
// allocation, defaulting to the yard.
func ResolvePlacements(dateKey string, resources []Resource, allocations AllocationLog, partials PartialAllocationLog) []Placement {
	dayAlloc := allocations[dateKey]
	dayPartials := partials[dateKey]

	var placements []Placement
	for _, res := range resources {
		if res.Dismissed(dateKey) {
			continue
		}

		if segs := dayPartials[res.ID]; len(segs) > 0 {
			for i, seg := range segs {
				placements = append(placements, Placement{
					ResourceID:       res.ID,
					WorksiteID:       LocationFor(seg.WorksiteID).LogID(),
					Hours:            clampNumber(seg.Hours),
					SegmentIndex:     i,
					MaintenanceAfter: seg.MaintenanceAfter,
				})
			}
			continue
		}

		placements = append(placements, Placement{
			ResourceID: res.ID,
			WorksiteID: LocationFor(dayAlloc[res.ID]).LogID(),
			FullDay:    true,
		})
	}
	return placements
}

// SplitOptions controls how a resource's day is divided.
type SplitOptions struct {
	EarlyDismissal   bool
	MaintenanceAfter bool
}

// HourSplit is the write intent produced by splitting a day: the new partial
// segments plus, for machines going into post-shift maintenance, the
// maintenance toggle that has to be recorded on the same date.
type HourSplit struct {
	Segments    []PartialSegment
	Maintenance *MaintenanceEntry
}

// BuildHourSplit divides a resource's day: hoursAtSite stay at the current
// site, and unless the resource is dismissed early the remainder goes to the
// yard. A machine with MaintenanceAfter set also gets an explicit
// maintenance toggle, which is what starts its sticky maintenance interval.
func BuildHourSplit(res Resource, currentSiteID string, hoursAtSite, maxHours float64, opts SplitOptions) HourSplit {
	hoursAtSite = clampNumber(hoursAtSite)
	split := HourSplit{
		Segments: []PartialSegment{{
			WorksiteID: LocationFor(currentSiteID).LogID(),
			Hours:      hoursAtSite,
		}},
	}

	remaining := maxHours - hoursAtSite
	if remaining <= 0 {
		return split
	}
	if opts.EarlyDismissal {
		split.Segments[0].EarlyDismissal = true
		return split
	}

	split.Segments = append(split.Segments, PartialSegment{
		WorksiteID:       YardID,
		Hours:            remaining,
		MaintenanceAfter: opts.MaintenanceAfter,
	})
	if opts.MaintenanceAfter && res.Type == ResourceMachine {
		split.Maintenance = &MaintenanceEntry{
			InMaintenance: true,
			Reason:        "Manutenção Pós-Turno",
		}
	}
	return split
}

// clampNumber guards against malformed log values: negative numbers and NaN
// collapse to 0 instead of propagating through cost math.
func clampNumber(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}
