package services

import (
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// CalendarDay returns the calendar date of value as observed in location.
func CalendarDay(value time.Time, location *time.Location) datatypes.Date {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseCalendarDay parses a YYYY-MM-DD date.
func ParseCalendarDay(raw string) (datatypes.Date, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(parsed), nil
}

func FormatCalendarDay(day datatypes.Date) string {
	return normalizeDay(day).Format(dateLayout)
}

func AddDays(day datatypes.Date, days int) datatypes.Date {
	return datatypes.Date(normalizeDay(day).AddDate(0, 0, days))
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from datatypes.Date, to datatypes.Date) int {
	return int(normalizeDay(to).Sub(normalizeDay(from)).Hours() / 24)
}

// normalizeDay drops the location a stored date was scanned with and keeps
// only its year, month and day.
func normalizeDay(day datatypes.Date) time.Time {
	year, month, d := time.Time(day).Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
