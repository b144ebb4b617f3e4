package board

import "sort"

// YardBucketName labels the synthetic idleness bucket in the site ranking.
const YardBucketName = "Pátio (Ociosidade)"

// SiteCost is one entry of the per-worksite cost ranking.
type SiteCost struct {
	WorksiteID string  `json:"worksiteId"`
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
}

// IdleResource is one entry of the idle-day ranking.
type IdleResource struct {
	ResourceID string       `json:"resourceId"`
	Name       string       `json:"name"`
	Type       ResourceType `json:"type"`
	Days       int          `json:"days"`
}

// CostReport aggregates a date range into period totals, per-site and
// per-day figures, and the two rankings the dashboard shows.
type CostReport struct {
	TotalCost          float64 `json:"totalCost"`
	TotalRealCost      float64 `json:"totalRealCost"`
	TotalEstimatedCost float64 `json:"totalEstimatedCost"`
	TotalFuelCost      float64 `json:"totalFuelCost"`
	TotalRainCost      float64 `json:"totalRainCost"`
	TotalIdleCost      float64 `json:"totalIdleCost"`
	TotalOvertimeCost  float64 `json:"totalOvertimeCost"`
	// TotalMaintenanceCost is the downtime ledger: costPerDay for every
	// finalized day a resource sat in maintenance. Kept out of TotalCost.
	TotalMaintenanceCost float64 `json:"totalMaintenanceCost"`

	CostBySite map[string]float64 `json:"costBySite"`
	CostByDay  map[string]float64 `json:"costByDay"`

	SiteRanking []SiteCost     `json:"siteRanking"`
	IdleRanking []IdleResource `json:"idleRanking"`
}

// CostOptions tunes the aggregation.
type CostOptions struct {
	// TopIdle caps the idle-resource ranking; <= 0 means 3.
	TopIdle int
}

// ComputeCosts walks [fromKey, toKey] in ascending order and derives every
// cost figure from the snapshot's logs. The snapshot is read-only; the one
// piece of mutable state is the maintenance tracker, local to this call.
func ComputeCosts(fromKey, toKey string, snap *Snapshot, opts CostOptions) CostReport {
	report := CostReport{
		CostBySite: make(map[string]float64),
		CostByDay:  make(map[string]float64),
	}
	if snap == nil {
		return report
	}

	sites := make(map[string]Worksite, len(snap.Worksites))
	for _, ws := range snap.Worksites {
		sites[ws.ID] = ws
	}

	tracker := NewMaintenanceTracker(snap.Maintenance, snap.Allocations, snap.Partials)
	idleDays := make(map[string]int)

	for _, dateKey := range DateKeysInRange(fromKey, toKey) {
		tracker.Advance(dateKey)

		maxHours := MaxHoursForKey(dateKey)
		hourBase := maxHours
		if hourBase <= 0 {
			hourBase = 8
		}
		final := snap.Metadata[dateKey].IsFinalAllocation
		dayAlloc := snap.Allocations[dateKey]
		dayPartials := snap.Partials[dateKey]

		for _, res := range snap.Resources {
			if res.IgnoreCost || res.Dismissed(dateKey) {
				continue
			}
			costPerDay := clampNumber(res.CostPerDay)
			hourly := costPerDay / hourBase

			if tracker.InMaintenance(res.ID) {
				// Zero cost while down; the downtime ledger only counts
				// committed days.
				if final {
					report.TotalMaintenanceCost += costPerDay
				}
				continue
			}

			var dayCost float64
			segs := dayPartials[res.ID]
			overtimeSite := ""

			if len(segs) > 0 {
				for _, seg := range segs {
					hours := clampNumber(seg.Hours)
					loc := LocationFor(seg.WorksiteID)
					switch loc.Kind {
					case PlacementSite:
						if _, known := sites[loc.WorksiteID]; !known {
							continue // dangling worksite reference
						}
						c := hourly * hours
						report.CostBySite[loc.WorksiteID] += c
						dayCost += c
						if overtimeSite == "" {
							overtimeSite = loc.WorksiteID
						}
					case PlacementRain:
						c := hourly * hours
						report.TotalRainCost += c
						dayCost += c
					}
				}
			} else {
				loc := LocationFor(dayAlloc[res.ID])
				switch loc.Kind {
				case PlacementSite:
					if _, known := sites[loc.WorksiteID]; known {
						report.CostBySite[loc.WorksiteID] += costPerDay
						dayCost += costPerDay
						overtimeSite = loc.WorksiteID
					}
				case PlacementRain:
					report.TotalRainCost += costPerDay
					dayCost += costPerDay
				case PlacementYard:
					// Paid-but-unproductive: only on committed working
					// weekdays, and never for administrative staff.
					if maxHours > 0 && final && !res.IsAdministrative {
						report.TotalIdleCost += costPerDay
						report.CostBySite[YardID] += costPerDay
						dayCost += costPerDay
						idleDays[res.ID]++
					}
				}
			}

			if ov, ok := snap.Overtime[dateKey][res.ID]; ok && overtimeSite != "" {
				c := clampNumber(ov.Hours) * hourly * clampNumber(ov.Multiplier)
				report.TotalOvertimeCost += c
				report.CostBySite[overtimeSite] += c
				dayCost += c
			}

			if fe, ok := snap.Fuel[dateKey][res.ID]; ok {
				fuelCost := clampNumber(fe.FuelLiters) * clampNumber(snap.FuelQuotes[dateKey])
				if fuelCost > 0 {
					report.TotalFuelCost += fuelCost
					dayCost += fuelCost
					attributeFuel(report.CostBySite, sites, segs, dayAlloc[res.ID], fuelCost)
				}
			}

			report.CostByDay[dateKey] += dayCost
			report.TotalCost += dayCost
			if final {
				report.TotalRealCost += dayCost
			} else {
				report.TotalEstimatedCost += dayCost
			}
		}
	}

	report.SiteRanking = rankSites(report.CostBySite, sites)
	report.IdleRanking = rankIdle(idleDays, snap.Resources, opts.TopIdle)
	return report
}

// attributeFuel spreads a day's fuel cost over the resource's worksites: by
// hour fraction across real partial segments, or whole onto the full-day
// site. Yard and rain fractions stay unattributed.
func attributeFuel(bySite map[string]float64, sites map[string]Worksite, segs []PartialSegment, fullDayID string, fuelCost float64) {
	if len(segs) == 0 {
		loc := LocationFor(fullDayID)
		if _, known := sites[loc.WorksiteID]; loc.IsSite() && known {
			bySite[loc.WorksiteID] += fuelCost
		}
		return
	}

	var totalHours float64
	for _, seg := range segs {
		totalHours += clampNumber(seg.Hours)
	}
	if totalHours <= 0 {
		return
	}
	for _, seg := range segs {
		loc := LocationFor(seg.WorksiteID)
		if _, known := sites[loc.WorksiteID]; !loc.IsSite() || !known {
			continue
		}
		bySite[loc.WorksiteID] += fuelCost * clampNumber(seg.Hours) / totalHours
	}
}

func rankSites(bySite map[string]float64, sites map[string]Worksite) []SiteCost {
	ranking := make([]SiteCost, 0, len(bySite))
	for id, total := range bySite {
		if total <= 0 {
			continue
		}
		name := YardBucketName
		if id != YardID {
			name = sites[id].Name
		}
		ranking = append(ranking, SiteCost{WorksiteID: id, Name: name, Total: total})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Total != ranking[j].Total {
			return ranking[i].Total > ranking[j].Total
		}
		return ranking[i].WorksiteID < ranking[j].WorksiteID
	})
	return ranking
}

func rankIdle(idleDays map[string]int, resources []Resource, topN int) []IdleResource {
	if topN <= 0 {
		topN = 3
	}
	var ranking []IdleResource
	for _, res := range resources {
		if days := idleDays[res.ID]; days > 0 {
			ranking = append(ranking, IdleResource{
				ResourceID: res.ID,
				Name:       res.Name,
				Type:       res.Type,
				Days:       days,
			})
		}
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Days != ranking[j].Days {
			return ranking[i].Days > ranking[j].Days
		}
		return ranking[i].ResourceID < ranking[j].ResourceID
	})
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	return ranking
}
