package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaxHours(t *testing.T) {
	testCases := []struct {
		name     string
		date     string
		expected float64
	}{
		{name: "Monday", date: "2024-03-04", expected: 9},
		{name: "Tuesday", date: "2024-03-05", expected: 9},
		{name: "Thursday", date: "2024-03-07", expected: 9},
		{name: "Friday", date: "2024-03-08", expected: 8},
		{name: "Saturday", date: "2024-03-09", expected: 0},
		{name: "Sunday", date: "2024-03-10", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := ParseDateKey(tc.date)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, MaxHours(day))
			assert.Equal(t, tc.expected, MaxHoursForKey(tc.date))
		})
	}
}

func TestMaxHoursForKeyInvalid(t *testing.T) {
	assert.Equal(t, 0.0, MaxHoursForKey("not-a-date"))
}

func TestDateKeyUsesLocalCalendarDate(t *testing.T) {
	day := time.Date(2024, 3, 5, 23, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-03-05", DateKey(day))
}

func TestDateKeysInRange(t *testing.T) {
	keys := DateKeysInRange("2024-02-28", "2024-03-02")
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, keys)

	assert.Nil(t, DateKeysInRange("2024-03-02", "2024-03-01"))
	assert.Nil(t, DateKeysInRange("garbage", "2024-03-01"))
	assert.Equal(t, []string{"2024-03-01"}, DateKeysInRange("2024-03-01", "2024-03-01"))
}
