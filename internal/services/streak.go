package services

import "gorm.io/datatypes"

// StreakTransition is the outcome of one qualifying activity.
type StreakTransition struct {
	Streak           int
	LastActivityDate datatypes.Date
	// Changed reports whether the streak value differs from the input.
	Changed bool
	// Updated reports whether the stored fields must be written.
	Updated bool
}

// AdvanceStreak applies one activity on today to a streak whose last
// activity was last (nil when there was none). Activity on the same day or
// dated before the last activity leaves the streak untouched.
func AdvanceStreak(current int, last *datatypes.Date, today datatypes.Date) StreakTransition {
	if current < 0 {
		current = 0
	}
	today = datatypes.Date(normalizeDay(today))
	if last == nil {
		return StreakTransition{Streak: 1, LastActivityDate: today, Changed: current != 1, Updated: true}
	}

	gap := DaysBetween(*last, today)
	switch {
	case gap <= 0:
		return StreakTransition{Streak: current, LastActivityDate: *last}
	case gap == 1:
		return StreakTransition{Streak: current + 1, LastActivityDate: today, Changed: true, Updated: true}
	default:
		return StreakTransition{Streak: 1, LastActivityDate: today, Changed: current != 1, Updated: true}
	}
}

// StreakAlive reports whether a streak last extended on last can still be
// continued on today.
func StreakAlive(last *datatypes.Date, today datatypes.Date) bool {
	if last == nil {
		return false
	}
	gap := DaysBetween(*last, today)
	return gap <= 1
}
