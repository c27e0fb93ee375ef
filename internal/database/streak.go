package database

import "time"

// StreakDays computes the current study streak: the length of the run of
// consecutive calendar days with at least one study session, ending today or
// yesterday. days must be distinct session dates sorted descending. A run
// whose most recent day is before yesterday is not a current streak and
// counts as 0.
func StreakDays(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today = truncateToDay(today)
	latest := truncateToDay(days[0])

	switch {
	case latest.Equal(today), latest.Equal(today.AddDate(0, 0, -1)):
	default:
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		d = truncateToDay(d)
		if !d.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = d
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
