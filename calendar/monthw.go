package calendar

import (
	"time"

	"github.com/caldros/cronweave/mark"
)

// monthRange reports the weekday of the first of the month (Monday=0 ...
// Sunday=6) and the number of days in it.
func monthRange(year, month int) (firstWeekdayMon0, days int) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	sun0 := int(first.Weekday())
	mon0 := (sun0 + 6) % 7
	next := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return mon0, next.AddDate(0, 0, -1).Day()
}

// spansFiveWeeks reports whether month (year, month) needs a fifth
// week-of-month slot: a month beginning on Thursday with at least 29 days,
// on Wednesday with at least 30, or on Tuesday with exactly 31.
func spansFiveWeeks(year, month int) bool {
	d1, dt := monthRange(year, month)
	switch d1 {
	case 3:
		return dt >= 29
	case 2:
		return dt >= 30
	case 1:
		return dt == 31
	default:
		return false
	}
}

// newMonthW builds the month-of-year digit for MW mode, branching to a
// 4-week or 5-week-of-month child depending on how the month's days fall
// against ISO week boundaries. context[0] must be the year.
func newMonthW(monthRecipe, weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	monthMark, err := monthRecipe.Resolve(monthBase, monthCap)
	if err != nil {
		return nil, err
	}
	wom, err := newWOM(weekRecipe, dowRecipe)
	if err != nil {
		return nil, err
	}
	longWom, err := newLongWOM(weekRecipe, dowRecipe)
	if err != nil {
		return nil, err
	}

	b := &branch{
		name:     "month-of-weeks",
		num:      monthMark,
		children: []Node{wom, longWom},
	}
	b.whichChildFn = func(v int, ctx Ctx) Node {
		if spansFiveWeeks(ctx[0], v) {
			return longWom
		}
		return wom
	}
	b.shortcutNext = noShortcut
	b.shortcutPrev = noShortcut
	return b, nil
}
