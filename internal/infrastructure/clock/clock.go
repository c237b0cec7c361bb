package clock

import (
	"time"

	"vetclinic/internal/domain/schedule"
	"vetclinic/internal/usecase/interfaces"
)

// SystemClock reports today's date as seen from the clinic's time zone.
type SystemClock struct {
	loc *time.Location
	now func() time.Time
}

var _ interfaces.IClock = (*SystemClock)(nil)

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc, now: time.Now}
}

func (c *SystemClock) Today() time.Time {
	return schedule.CivilDate(c.now(), c.loc)
}
