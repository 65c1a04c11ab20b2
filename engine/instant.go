// Package engine ties package clock and package calendar together into the
// recurrence engine's public surface: Instant (a plain calendar/clock point,
// with no time zone or DST concept per the engine's civil-time-only scope),
// Engine (encode/decode + Next/Prev per calendar mode), and Period
// (start..end recurring-window membership).
package engine

import (
	"fmt"
	"time"
)

// instantLayout is the wire/display format for an Instant: civil date and
// time, no zone offset, matching the layout notify's date-beautify helper
// and httpapi's request/response bodies both parse and format.
const instantLayout = "2006-01-02 15:04:05"

// Instant is a civil calendar point: no time zone, no DST, second
// resolution. Month and Day are 1-based, matching the civil calendar.
type Instant struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

// String formats i as "2006-01-02 15:04:05".
func (i Instant) String() string {
	return i.toTime().Format(instantLayout)
}

// ParseInstant parses the "2006-01-02 15:04:05" layout String produces.
func ParseInstant(s string) (Instant, error) {
	t, err := time.Parse(instantLayout, s)
	if err != nil {
		return Instant{}, fmt.Errorf("engine: parse instant %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Instant{Year: y, Month: int(m), Day: d, Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (i Instant) toTime() time.Time {
	return time.Date(i.Year, time.Month(i.Month), i.Day, i.Hour, i.Minute, i.Second, 0, time.UTC)
}

func fromTime(t time.Time, hour, minute, second int) Instant {
	y, m, d := t.Date()
	return Instant{Year: y, Month: int(m), Day: d, Hour: hour, Minute: minute, Second: second}
}

// mondayIndex maps time.Weekday (Sunday=0) to a Monday=0 .. Sunday=6 index.
func mondayIndex(wd time.Weekday) int { return (int(wd) + 6) % 7 }

// isoWeekday is ISO 8601's weekday: Monday=1 .. Sunday=7, the value
// datetime.isocalendar() reports and what the day-of-week Mark digit ranges
// over in W and MW mode.
func isoWeekday(wd time.Weekday) int { return mondayIndex(wd) + 1 }

// weekShift is the day offset from a month/year's first-of-period date back
// to the Monday that starts its first ISO week - used by both the yweek and
// mweek decoders, which share the same "anchor on the nearest Monday, then
// walk whole weeks" arithmetic.
func weekShift(wd int) int {
	if wd > 3 {
		return 7 - wd
	}
	return -wd
}
