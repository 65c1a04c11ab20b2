// Package libdates computes canonical (years, months, days) spans between
// two civil dates.
//
// The recurrence engine operates on civil dates only: Year-Month-Day in the
// proleptic Gregorian calendar, no clock time, no time zone, no DST. A
// period schedule's start..end window is an interval over such dates, and
// rendering its length for a human ("spans 1 year, 2 months, 3 days")
// requires a canonical decomposition of the interval into whole calendar
// units. The rule used here:
//
//  1. Take the maximum whole-month count M such that start plus M months
//     does not pass end, where "plus a month" follows Go's AddDate
//     clamping (Jan 31 + 1 month lands on Mar 2/3, Feb 29 + 1 year lands
//     on Mar 1).
//  2. The leftover days are the civil-day count from that anchor to end.
//
// Day deltas are computed over a serial-day function rather than
// time.Duration subtraction, which would overflow for multi-millennium
// spans; the engine's year domain runs all the way to 9999, and a period
// over it may too.
package libdates

import (
	"errors"
	"time"
)

// YMDiff is the canonical (years, months, days) length of a civil-date
// interval: applying it back to the interval's start with Apply yields the
// interval's end. Years >= 0, Months in [0, 11], Days >= 0; a zero YMDiff
// means start == end.
type YMDiff struct {
	Years  int
	Months int
	Days   int
}

var (
	// ErrStartAfterEnd indicates start > end.
	ErrStartAfterEnd = errors.New("start after end")
	// ErrYearOutOfRange indicates a date outside the engine's civil range
	// [0001-01-01, 9999-12-31].
	ErrYearOutOfRange = errors.New("date out of supported range [0001-01-01, 9999-12-31]")
)

// DiffYMD computes the canonical (years, months, days) between start and
// end. Only the date components of the arguments are considered; any clock
// time or zone they carry is discarded before comparison.
//
// The month count is maximal: addMonths(start, M) <= end while
// addMonths(start, M+1) > end, with month rollover following AddDate's
// clamping. Complexity is O(1) - an arithmetic month estimate plus at most
// one correction step in either direction.
func DiffYMD(start, end time.Time) (YMDiff, error) {
	s := midnight(start)
	e := midnight(end)

	if s.After(e) {
		return YMDiff{}, ErrStartAfterEnd
	}
	if !inCivilRange(s) || !inCivilRange(e) {
		return YMDiff{}, ErrYearOutOfRange
	}

	// Arithmetic month estimate, then settle on the maximal anchor <= end.
	m := (e.Year()-s.Year())*12 + int(e.Month()-s.Month())
	anchor := addMonths(s, m)
	if anchor.After(e) {
		m--
		anchor = addMonths(s, m)
	}
	if next := addMonths(s, m+1); !next.After(e) {
		m++
		anchor = next
	}

	days := int(serialDay(e.Year(), e.Month(), e.Day()) -
		serialDay(anchor.Year(), anchor.Month(), anchor.Day()))

	return YMDiff{
		Years:  m / 12,
		Months: m % 12,
		Days:   days,
	}, nil
}

// Apply reconstructs the interval end from its start: start plus d.Years
// years and d.Months months (AddDate clamping), plus d.Days civil days.
// DiffYMD followed by Apply round-trips exactly.
func (d YMDiff) Apply(start time.Time) time.Time {
	anchor := addMonths(midnight(start), d.Years*12+d.Months)
	return anchor.AddDate(0, 0, d.Days)
}

func addMonths(t time.Time, m int) time.Time {
	return t.AddDate(0, m, 0)
}

// midnight truncates t to its civil date at UTC midnight, so that civil
// dates compare monotonically regardless of the wall clock on the inputs.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inCivilRange(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}

// serialDay converts a civil date to a serial day count in the proleptic
// Gregorian calendar (Howard Hinnant's days-from-civil algorithm). Callers
// subtract two serial days to obtain a delta; the absolute zero point is
// irrelevant.
func serialDay(y int, m time.Month, d int) int64 {
	yy := int64(y)
	mm := int64(m)
	dd := int64(d)
	if mm <= 2 {
		yy--
		mm += 12
	}
	era := floorDiv(yy, 400)
	yoe := yy - era*400
	doy := (153*(mm-3)+2)/5 + dd - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe
}

func floorDiv(a, b int64) int64 {
	q := a / b
	r := a % b
	if (r != 0) && ((r > 0) != (b > 0)) {
		q--
	}
	return q
}
