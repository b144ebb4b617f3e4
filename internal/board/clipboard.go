package board

// DayClipboard is one day's full board state, detached from its date so it
// can be pasted somewhere else.
type DayClipboard struct {
	Allocations  map[string]string           `json:"allocations"`
	Observations map[string]string           `json:"observations"`
	Visibility   map[string]bool             `json:"visibility"`
	Links        map[string]string           `json:"links"`
	Overtime     map[string]OvertimeEntry    `json:"overtime"`
	Partials     map[string][]PartialSegment `json:"partialAllocations"`
}

// CopyDay captures the given date from the snapshot. The returned clipboard
// shares nothing with the snapshot's maps.
func CopyDay(dateKey string, snap *Snapshot) DayClipboard {
	clip := DayClipboard{
		Allocations:  map[string]string{},
		Observations: map[string]string{},
		Visibility:   map[string]bool{},
		Links:        map[string]string{},
		Overtime:     map[string]OvertimeEntry{},
		Partials:     map[string][]PartialSegment{},
	}
	if snap == nil {
		return clip
	}
	for id, site := range snap.Allocations[dateKey] {
		clip.Allocations[id] = site
	}
	for id, note := range snap.Observations[dateKey] {
		clip.Observations[id] = note
	}
	for id, visible := range snap.Visibility[dateKey] {
		clip.Visibility[id] = visible
	}
	for machine, operator := range snap.Links[dateKey] {
		clip.Links[machine] = operator
	}
	for id, entry := range snap.Overtime[dateKey] {
		clip.Overtime[id] = entry
	}
	for id, segs := range snap.Partials[dateKey] {
		clip.Partials[id] = append([]PartialSegment(nil), segs...)
	}
	return clip
}

// AdjustPartialsForDayType rebalances copied partial segments when the
// target day has a different hour ceiling than the day they came from (the
// 9h weekday vs 8h Friday transition). The deficit or surplus lands on the
// first segment holding the smallest positive hour count; a reduction is
// only applied when that segment stays positive afterwards. This is a
// heuristic rebalancing, not a proportional scale.
func AdjustPartialsForDayType(partials map[string][]PartialSegment, targetMaxHours float64) map[string][]PartialSegment {
	adjusted := make(map[string][]PartialSegment, len(partials))
	for resourceID, segs := range partials {
		out := append([]PartialSegment(nil), segs...)

		var total float64
		for _, seg := range out {
			total += clampNumber(seg.Hours)
		}

		switch {
		case total > targetMaxHours:
			if idx := smallestPositiveSegment(out); idx >= 0 {
				deficit := total - targetMaxHours
				if out[idx].Hours > deficit {
					out[idx].Hours -= deficit
				}
			}
		case total > 0 && total < targetMaxHours:
			if idx := smallestPositiveSegment(out); idx >= 0 {
				out[idx].Hours += targetMaxHours - total
			}
		}
		adjusted[resourceID] = out
	}
	return adjusted
}

// smallestPositiveSegment picks the segment to rebalance: the first one, in
// order, carrying the minimum hour count among those with hours > 0.
func smallestPositiveSegment(segs []PartialSegment) int {
	idx := -1
	min := 0.0
	for i, seg := range segs {
		h := clampNumber(seg.Hours)
		if h <= 0 {
			continue
		}
		if idx == -1 || h < min {
			idx = i
			min = h
		}
	}
	return idx
}
