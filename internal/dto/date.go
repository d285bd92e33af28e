package dto

import (
	"time"

	"gorm.io/datatypes"
)

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(day datatypes.Date) string {
	return time.Time(day).Format("2006-01-02")
}
