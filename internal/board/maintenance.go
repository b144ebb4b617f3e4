package board

import "sort"

// Maintenance status is sticky: once a resource is toggled into maintenance
// it stays there across days until a person toggles it off or the resource
// is actually put back to work on a real worksite. The auto-clear is never
// written back to the log; it is re-derived on every query.

// maintState is the effective state of one resource.
type maintState int

const (
	stateOperational maintState = iota
	stateInMaintenance
)

// resourceMaint tracks one resource's effective maintenance state along an
// ascending walk over the logs.
type resourceMaint struct {
	state maintState
	entry MaintenanceEntry
	// sinceKey is the date of the explicit toggle that put the resource in
	// maintenance; only allocations strictly after it can auto-clear.
	sinceKey string
}

func (m *resourceMaint) applyToggle(dateKey string, entry MaintenanceEntry) {
	m.entry = entry
	m.sinceKey = dateKey
	if entry.InMaintenance {
		m.state = stateInMaintenance
	} else {
		m.state = stateOperational
	}
}

func (m *resourceMaint) autoClear() {
	m.state = stateOperational
	m.entry = MaintenanceEntry{}
}

// MaintenanceStatus resolves the effective maintenance entry for a resource
// on targetKey. This is the reference single-date implementation; bulk range
// scans use MaintenanceTracker, which must agree with it on every date.
func MaintenanceStatus(resourceID, targetKey string, maintenance MaintenanceLog, allocations AllocationLog, partials PartialAllocationLog) (MaintenanceEntry, bool) {
	var last resourceMaint

	// Last explicit toggle wins over the full history up to the target date.
	for _, d := range sortedKeysUpTo(maintenance, targetKey) {
		if entry, ok := maintenance[d][resourceID]; ok {
			last.applyToggle(d, entry)
		}
	}
	if last.state != stateInMaintenance {
		return MaintenanceEntry{}, false
	}

	// Any real allocation strictly after the toggle clears it implicitly.
	if hasRealAllocationAfter(resourceID, last.sinceKey, targetKey, allocations, partials) {
		return MaintenanceEntry{}, false
	}
	return last.entry, true
}

// InMaintenance is the boolean form of MaintenanceStatus.
func InMaintenance(resourceID, targetKey string, maintenance MaintenanceLog, allocations AllocationLog, partials PartialAllocationLog) bool {
	_, in := MaintenanceStatus(resourceID, targetKey, maintenance, allocations, partials)
	return in
}

// hasRealAllocationAfter reports whether the resource was allocated to a real
// worksite on any date in (afterKey, throughKey].
func hasRealAllocationAfter(resourceID, afterKey, throughKey string, allocations AllocationLog, partials PartialAllocationLog) bool {
	for d, byResource := range allocations {
		if d <= afterKey || d > throughKey {
			continue
		}
		if LocationFor(byResource[resourceID]).IsSite() {
			return true
		}
	}
	for d, byResource := range partials {
		if d <= afterKey || d > throughKey {
			continue
		}
		for _, seg := range byResource[resourceID] {
			if LocationFor(seg.WorksiteID).IsSite() {
				return true
			}
		}
	}
	return false
}

func sortedKeysUpTo(log MaintenanceLog, throughKey string) []string {
	keys := make([]string, 0, len(log))
	for d := range log {
		if d <= throughKey {
			keys = append(keys, d)
		}
	}
	sort.Strings(keys)
	return keys
}

// MaintenanceTracker is the running variant of MaintenanceStatus for
// ascending date-range scans. It carries per-resource state so a month-long
// aggregation does not re-sort the maintenance log for every single day.
// The cache is local to one aggregation call and discarded afterwards.
type MaintenanceTracker struct {
	maintenance MaintenanceLog
	allocations AllocationLog
	partials    PartialAllocationLog
	byResource  map[string]*resourceMaint
	lastKey     string
}

// NewMaintenanceTracker builds a tracker positioned before any date. Advance
// must be called with strictly increasing date keys.
func NewMaintenanceTracker(maintenance MaintenanceLog, allocations AllocationLog, partials PartialAllocationLog) *MaintenanceTracker {
	return &MaintenanceTracker{
		maintenance: maintenance,
		allocations: allocations,
		partials:    partials,
		byResource:  make(map[string]*resourceMaint),
	}
}

// Advance moves the tracker to dateKey, applying that day's explicit toggles
// and auto-clearing allocations. Skipped days between the previous position
// and dateKey are replayed so sparse scans stay correct.
func (t *MaintenanceTracker) Advance(dateKey string) {
	if dateKey <= t.lastKey {
		return
	}
	// Replay any toggle dates that fall inside the gap, in order.
	for _, d := range t.gapToggleDates(dateKey) {
		t.applyDay(d)
	}
	t.applyDay(dateKey)
	t.lastKey = dateKey
}

// Status returns the effective entry for a resource at the tracker's current
// date.
func (t *MaintenanceTracker) Status(resourceID string) (MaintenanceEntry, bool) {
	m, ok := t.byResource[resourceID]
	if !ok || m.state != stateInMaintenance {
		return MaintenanceEntry{}, false
	}
	return m.entry, true
}

// InMaintenance is the boolean form of Status.
func (t *MaintenanceTracker) InMaintenance(resourceID string) bool {
	_, in := t.Status(resourceID)
	return in
}

func (t *MaintenanceTracker) applyDay(dateKey string) {
	// Explicit toggles first: a toggle on the same day as an allocation
	// wins, because auto-clear only considers allocations strictly after
	// the toggle date.
	for resourceID, entry := range t.maintenance[dateKey] {
		m := t.resource(resourceID)
		m.applyToggle(dateKey, entry)
	}

	for resourceID, m := range t.byResource {
		if m.state != stateInMaintenance || m.sinceKey == dateKey {
			continue
		}
		if t.hasRealAllocationOn(resourceID, dateKey) {
			m.autoClear()
		}
	}
}

func (t *MaintenanceTracker) hasRealAllocationOn(resourceID, dateKey string) bool {
	if LocationFor(t.allocations[dateKey][resourceID]).IsSite() {
		return true
	}
	for _, seg := range t.partials[dateKey][resourceID] {
		if LocationFor(seg.WorksiteID).IsSite() {
			return true
		}
	}
	return false
}

// gapToggleDates lists maintenance and allocation dates in (lastKey, dateKey)
// that have to be replayed before landing on dateKey.
func (t *MaintenanceTracker) gapToggleDates(dateKey string) []string {
	seen := make(map[string]struct{})
	var gap []string
	add := func(d string) {
		if d <= t.lastKey || d >= dateKey {
			return
		}
		if _, dup := seen[d]; dup {
			return
		}
		seen[d] = struct{}{}
		gap = append(gap, d)
	}
	for d := range t.maintenance {
		add(d)
	}
	for d := range t.allocations {
		add(d)
	}
	for d := range t.partials {
		add(d)
	}
	sort.Strings(gap)
	return gap
}

func (t *MaintenanceTracker) resource(resourceID string) *resourceMaint {
	m, ok := t.byResource[resourceID]
	if !ok {
		m = &resourceMaint{}
		t.byResource[resourceID] = m
	}
	return m
}
