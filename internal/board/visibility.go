package board

// WorksiteVisible decides whether a worksite shows on the board for a date.
// An explicit show/hide toggle wins verbatim; otherwise the site is visible
// exactly when at least one resource's full-day allocation points at it.
// Partial segments are deliberately not consulted in the fallback.
func WorksiteVisible(worksiteID, dateKey string, visibility VisibilityLog, resources []Resource, allocations AllocationLog) bool {
	if explicit, ok := visibility[dateKey][worksiteID]; ok {
		return explicit
	}

	dayAlloc := allocations[dateKey]
	for _, res := range resources {
		if res.Dismissed(dateKey) {
			continue
		}
		if dayAlloc[res.ID] == worksiteID {
			return true
		}
	}
	return false
}

// AllocatedResources lists the resources whose full-day allocation for the
// date is the given worksite. The API layer uses it to refuse hiding a
// populated worksite.
func AllocatedResources(worksiteID, dateKey string, resources []Resource, allocations AllocationLog) []Resource {
	dayAlloc := allocations[dateKey]
	var allocated []Resource
	for _, res := range resources {
		if res.Dismissed(dateKey) {
			continue
		}
		if dayAlloc[res.ID] == worksiteID {
			allocated = append(allocated, res)
		}
	}
	return allocated
}
