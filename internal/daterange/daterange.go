// Package daterange holds the calendar-date arithmetic used for trip collision
// checks: parsing stored dates, widening a date to a full-day span, and the
// inclusive overlap test.
package daterange

import (
	"errors"
	"strings"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// ErrInvalidDate is returned by ParseDate for input it cannot read.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate reads "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar date it names, as midnight UTC. A timestamp keeps the calendar day
// of its own offset: "2024-05-10T23:30:00+05:30" is 2024-05-10.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Date(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

// Date strips t down to its calendar date, as midnight UTC.
// The zero time stays zero.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders the calendar date of t, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// DaySpan widens a calendar date into the instants it covers in loc:
// 00:00:00.000 through 23:59:59.999 local time. A zero date yields zero instants.
// A nil loc means time.Local.
func DaySpan(date time.Time, loc *time.Location) (start, end time.Time) {
	if date.IsZero() {
		return time.Time{}, time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	y, m, d := date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// Overlaps reports whether [aStart, aEnd] and [bStart, bEnd] intersect,
// both ends inclusive. If any bound is the zero time no overlap can be
// asserted and the result is false.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aStart.IsZero() || aEnd.IsZero() || bStart.IsZero() || bEnd.IsZero() {
		return false
	}
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// OverlapsDays applies the day-span rule to two calendar-date ranges before
// testing them, so a trip ending on the day another starts is a collision.
func OverlapsDays(aStart, aEnd, bStart, bEnd time.Time, loc *time.Location) bool {
	as, _ := DaySpan(aStart, loc)
	_, ae := DaySpan(aEnd, loc)
	bs, _ := DaySpan(bStart, loc)
	_, be := DaySpan(bEnd, loc)
	return Overlaps(as, ae, bs, be)
}
