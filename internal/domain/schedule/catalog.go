// Package schedule holds the clinic timetable: which slots exist on a given
// day and how dates and slots are written on the wire.
package schedule

import (
	"errors"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidSlot = errors.New("invalid slot, expected HH:MM")
)

var (
	weekdaySlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}
	weekendSlots = []string{"09:00", "10:00", "11:00"}
)

// IsWeekend reports whether date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Catalog returns the bookable slots for date in ascending order.
// The returned slice is a copy and may be modified by the caller.
func Catalog(date time.Time) []string {
	src := weekdaySlots
	if IsWeekend(date) {
		src = weekendSlots
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Offers reports whether slot is part of the catalog for date.
func Offers(date time.Time, slot string) bool {
	for _, s := range Catalog(date) {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseDate parses an ISO calendar date and returns it as midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ParseSlot validates an HH:MM time of day and returns it in canonical
// zero-padded form ("9:00" becomes "09:00").
func ParseSlot(raw string) (string, error) {
	t, err := time.Parse(SlotLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidSlot
	}
	return t.Format(SlotLayout), nil
}

// CivilDate truncates t to its calendar date in loc and returns that date as
// midnight UTC, the representation used for every stored date.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a stored date in DateLayout.
func FormatDate(d time.Time) string {
	return d.UTC().Format(DateLayout)
}
