package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const timezoneHeader = "X-Timezone"

// DayResolver decides which calendar day a request happens on: the
// caller's X-Timezone when it names a valid zone, else the server default.
type DayResolver struct {
	fallback *time.Location
	now      func() time.Time
}

func NewDayResolver(fallback *time.Location) *DayResolver {
	if fallback == nil {
		fallback = time.UTC
	}
	return &DayResolver{fallback: fallback, now: time.Now}
}

// WithClock returns a copy of d that reads the current instant from now.
func (d *DayResolver) WithClock(now func() time.Time) *DayResolver {
	return &DayResolver{fallback: d.fallback, now: now}
}

func (d *DayResolver) Today(c *fiber.Ctx) datatypes.Date {
	loc := d.fallback
	if name := c.Get(timezoneHeader); name != "" {
		if zone, err := time.LoadLocation(name); err == nil {
			loc = zone
		}
	}
	return services.CalendarDay(d.now(), loc)
}
