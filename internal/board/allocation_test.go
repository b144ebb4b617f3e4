package board

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlacementsFullDayDefaultsToYard(t *testing.T) {
	resources := []Resource{{ID: "r1", Name: "João"}}

	placements := ResolvePlacements("2024-03-05", resources, nil, nil)
	require.Len(t, placements, 1)
	assert.Equal(t, "pateo", placements[0].WorksiteID)
	assert.True(t, placements[0].FullDay)
}

func TestResolvePlacementsPartialsOverrideFullDay(t *testing.T) {
	resources := []Resource{{ID: "r1"}}
	allocations := AllocationLog{
		"2024-03-05": {"r1": "obra-1"},
	}
	partials := PartialAllocationLog{
		"2024-03-05": {"r1": {
			{WorksiteID: "obra-2", Hours: 6},
			{WorksiteID: "pateo", Hours: 3, MaintenanceAfter: true},
		}},
	}

	placements := ResolvePlacements("2024-03-05", resources, allocations, partials)
	require.Len(t, placements, 2)

	assert.Equal(t, "obra-2", placements[0].WorksiteID)
	assert.Equal(t, 6.0, placements[0].Hours)
	assert.Equal(t, 0, placements[0].SegmentIndex)
	assert.False(t, placements[0].FullDay)

	assert.Equal(t, "pateo", placements[1].WorksiteID)
	assert.Equal(t, 1, placements[1].SegmentIndex)
	assert.True(t, placements[1].MaintenanceAfter)
}

func TestResolvePlacementsDismissalBoundary(t *testing.T) {
	resources := []Resource{
		{ID: "r1", DismissedAt: "2024-03-10"},
		{ID: "r2"},
	}
	allocations := AllocationLog{
		"2024-03-09": {"r1": "obra-1"},
		"2024-03-10": {"r1": "obra-1"},
	}

	// The day before the boundary the resource still shows.
	before := ResolvePlacements("2024-03-09", resources, allocations, nil)
	require.Len(t, before, 2)
	assert.Equal(t, "r1", before[0].ResourceID)

	// From the boundary on it is gone, history untouched.
	on := ResolvePlacements("2024-03-10", resources, allocations, nil)
	require.Len(t, on, 1)
	assert.Equal(t, "r2", on[0].ResourceID)

	after := ResolvePlacements("2024-04-01", resources, allocations, nil)
	require.Len(t, after, 1)
	assert.Equal(t, "r2", after[0].ResourceID)
}

func TestResolvePlacementsClampsMalformedHours(t *testing.T) {
	resources := []Resource{{ID: "r1"}}
	partials := PartialAllocationLog{
		"2024-03-05": {"r1": {
			{WorksiteID: "obra-1", Hours: -3},
			{WorksiteID: "pateo", Hours: math.NaN()},
		}},
	}

	placements := ResolvePlacements("2024-03-05", resources, nil, partials)
	require.Len(t, placements, 2)
	assert.Equal(t, 0.0, placements[0].Hours)
	assert.Equal(t, 0.0, placements[1].Hours)
}

func TestBuildHourSplit(t *testing.T) {
	machine := Resource{ID: "m1", Type: ResourceMachine}
	employee := Resource{ID: "e1", Type: ResourceEmployee}

	testCases := []struct {
		name            string
		resource        Resource
		currentSite     string
		hours           float64
		maxHours        float64
		opts            SplitOptions
		expectedSegs    []PartialSegment
		wantMaintenance bool
	}{
		{
			name:        "remainder goes to the yard",
			resource:    employee,
			currentSite: "obra-1",
			hours:       6,
			maxHours:    9,
			expectedSegs: []PartialSegment{
				{WorksiteID: "obra-1", Hours: 6},
				{WorksiteID: "pateo", Hours: 3},
			},
		},
		{
			name:        "early dismissal drops the remainder",
			resource:    employee,
			currentSite: "obra-1",
			hours:       5,
			maxHours:    8,
			opts:        SplitOptions{EarlyDismissal: true},
			expectedSegs: []PartialSegment{
				{WorksiteID: "obra-1", Hours: 5, EarlyDismissal: true},
			},
		},
		{
			name:        "machine with post-shift maintenance",
			resource:    machine,
			currentSite: "obra-2",
			hours:       4,
			maxHours:    9,
			opts:        SplitOptions{MaintenanceAfter: true},
			expectedSegs: []PartialSegment{
				{WorksiteID: "obra-2", Hours: 4},
				{WorksiteID: "pateo", Hours: 5, MaintenanceAfter: true},
			},
			wantMaintenance: true,
		},
		{
			name:        "employee never creates a maintenance toggle",
			resource:    employee,
			currentSite: "obra-2",
			hours:       4,
			maxHours:    9,
			opts:        SplitOptions{MaintenanceAfter: true},
			expectedSegs: []PartialSegment{
				{WorksiteID: "obra-2", Hours: 4},
				{WorksiteID: "pateo", Hours: 5, MaintenanceAfter: true},
			},
		},
		{
			name:        "no current site defaults to the yard",
			resource:    employee,
			currentSite: "",
			hours:       9,
			maxHours:    9,
			expectedSegs: []PartialSegment{
				{WorksiteID: "pateo", Hours: 9},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			split := BuildHourSplit(tc.resource, tc.currentSite, tc.hours, tc.maxHours, tc.opts)
			assert.Equal(t, tc.expectedSegs, split.Segments)
			if tc.wantMaintenance {
				require.NotNil(t, split.Maintenance)
				assert.True(t, split.Maintenance.InMaintenance)
				assert.Equal(t, "Manutenção Pós-Turno", split.Maintenance.Reason)
			} else {
				assert.Nil(t, split.Maintenance)
			}
		})
	}
}
