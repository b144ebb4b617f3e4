package board

import "time"

// dateKeyLayout is the canonical key format for every per-day log.
const dateKeyLayout = "2006-01-02"

// DateKey formats a time as the canonical YYYY-MM-DD key, using the local
// calendar date of t (no UTC shifting).
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a canonical date key back into a time at local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}

// MaxHours returns the working-hour ceiling for a calendar day: weekends are
// non-working, Friday is an 8h day, Monday through Thursday are 9h days.
func MaxHours(t time.Time) float64 {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return 0
	case time.Friday:
		return 8
	default:
		return 9
	}
}

// MaxHoursForKey is MaxHours over a date key. Unparseable keys count as
// non-working days.
func MaxHoursForKey(key string) float64 {
	t, err := ParseDateKey(key)
	if err != nil {
		return 0
	}
	return MaxHours(t)
}

// DateKeysInRange returns every date key from fromKey through toKey,
// inclusive, in ascending order. An invalid or inverted range yields nil.
func DateKeysInRange(fromKey, toKey string) []string {
	from, err := ParseDateKey(fromKey)
	if err != nil {
		return nil
	}
	to, err := ParseDateKey(toKey)
	if err != nil || to.Before(from) {
		return nil
	}

	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, DateKey(d))
	}
	return keys
}
