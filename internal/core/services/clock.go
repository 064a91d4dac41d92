package services

import (
	"time"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/progress"
)

// Clock supplies "now" in the zone calendar days are counted in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.location())
}

func (c Clock) today() time.Time {
	return progress.Day(c.now())
}

// day parses a YYYY-MM-DD reference date. An empty string means today.
func (c Clock) day(date string) (time.Time, error) {
	if date == "" {
		return c.today(), nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, date, c.location())
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return progress.Day(t), nil
}
