package engine

import (
	"time"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/clock"
)

// encodeCalendar turns an Instant into the calendar tuple the mode's
// calendar.Calendar expects: reverse order, day-like digit first, year
// last.
func encodeCalendar(mode calendar.Mode, in Instant) []int {
	switch mode {
	case calendar.ModeM:
		return []int{in.Day, in.Month, in.Year}
	case calendar.ModeD:
		doy := in.toTime().YearDay()
		return []int{doy, in.Year}
	case calendar.ModeW:
		t := in.toTime()
		isoYear, isoWeek := t.ISOWeek()
		return []int{isoWeekday(t.Weekday()), isoWeek, isoYear}
	case calendar.ModeMW:
		return encodeMWeek(in)
	default:
		return nil
	}
}

// encodeMWeek attributes each Monday-to-Sunday week to the month holding
// its Thursday: week one of a month is the week containing the month's
// first Thursday, so the leading days of a month can belong to the previous
// month's last week and its trailing days to the next month's first week
// (and, across December/January, to the neighbouring year).
func encodeMWeek(in Instant) []int {
	t := in.toTime()
	weekday := isoWeekday(t.Weekday())
	thursday := t.AddDate(0, 0, 4-weekday)
	return []int{weekday, (thursday.Day()-1)/7 + 1, int(thursday.Month()), thursday.Year()}
}

// decode is the inverse of encodeCalendar.
func decode(mode calendar.Mode, cal []int, clk clock.Triple) Instant {
	h, m, s := clk[0], clk[1], clk[2]
	switch mode {
	case calendar.ModeM:
		return Instant{Year: cal[2], Month: cal[1], Day: cal[0], Hour: h, Minute: m, Second: s}
	case calendar.ModeD:
		doy, year := cal[0], cal[1]
		fd := time.Date(year, 1, 1, h, m, s, 0, time.UTC)
		return fromTime(fd.AddDate(0, 0, doy-1), h, m, s)
	case calendar.ModeW:
		day, week, year := cal[0], cal[1], cal[2]
		fd := time.Date(year, 1, 1, h, m, s, 0, time.UTC)
		shift := weekShift(mondayIndex(fd.Weekday()))
		days := (day - 1 + shift) + (week-1)*7
		return fromTime(fd.AddDate(0, 0, days), h, m, s)
	case calendar.ModeMW:
		day, week, month, year := cal[0], cal[1], cal[2], cal[3]
		fd := time.Date(year, time.Month(month), 1, h, m, s, 0, time.UTC)
		shift := weekShift(mondayIndex(fd.Weekday()))
		days := (day - 1 + shift) + (week-1)*7
		return fromTime(fd.AddDate(0, 0, days), h, m, s)
	default:
		return Instant{}
	}
}

func encodeClockTriple(in Instant) clock.Triple {
	return clock.Triple{in.Hour, in.Minute, in.Second}
}
