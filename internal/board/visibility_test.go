package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksiteVisible(t *testing.T) {
	resources := []Resource{{ID: "r1"}, {ID: "r2"}}

	testCases := []struct {
		name        string
		worksiteID  string
		visibility  VisibilityLog
		allocations AllocationLog
		expected    bool
	}{
		{
			name:       "unused worksite starts hidden",
			worksiteID: "obra-1",
			expected:   false,
		},
		{
			name:       "allocation presence shows the worksite",
			worksiteID: "obra-1",
			allocations: AllocationLog{
				"2024-03-05": {"r1": "obra-1"},
			},
			expected: true,
		},
		{
			name:       "explicit hide wins over allocation fallback",
			worksiteID: "obra-1",
			visibility: VisibilityLog{
				"2024-03-05": {"obra-1": false},
			},
			allocations: AllocationLog{
				"2024-03-05": {"r1": "obra-1"},
			},
			expected: false,
		},
		{
			name:       "explicit show with no allocations",
			worksiteID: "obra-2",
			visibility: VisibilityLog{
				"2024-03-05": {"obra-2": true},
			},
			expected: true,
		},
		{
			name:       "toggle on an unrelated worksite changes nothing",
			worksiteID: "obra-1",
			visibility: VisibilityLog{
				"2024-03-05": {"obra-9": false},
			},
			allocations: AllocationLog{
				"2024-03-05": {"r1": "obra-1"},
			},
			expected: true,
		},
		{
			name:       "partial allocations are not a fallback",
			worksiteID: "obra-1",
			allocations: AllocationLog{
				"2024-03-05": {"r1": "pateo"},
			},
			expected: false,
		},
		{
			name:       "explicit entry on another date does not leak",
			worksiteID: "obra-1",
			visibility: VisibilityLog{
				"2024-03-04": {"obra-1": true},
			},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := WorksiteVisible(tc.worksiteID, "2024-03-05", tc.visibility, resources, tc.allocations)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAllocatedResources(t *testing.T) {
	resources := []Resource{
		{ID: "r1", Name: "João"},
		{ID: "r2", Name: "Maria"},
		{ID: "r3", Name: "Pedro", DismissedAt: "2024-03-01"},
	}
	allocations := AllocationLog{
		"2024-03-05": {"r1": "obra-1", "r2": "obra-2", "r3": "obra-1"},
	}

	allocated := AllocatedResources("obra-1", "2024-03-05", resources, allocations)
	require.Len(t, allocated, 1)
	assert.Equal(t, "João", allocated[0].Name)

	assert.Empty(t, AllocatedResources("obra-9", "2024-03-05", resources, allocations))
}
