package calendar

import "github.com/caldros/cronweave/mark"

const (
	monthBase, monthCap = 1, 12
)

// isLongMonth reports whether month (1-based) has 31 days: Jan, Mar, May,
// Jul, Aug, Oct, Dec.
func isLongMonth(month int) bool {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return true
	default:
		return false
	}
}

// isLeapYear applies the Gregorian rule.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// newMonth builds the month-of-year digit, branching to one of four
// day-of-month leaves: the 30-day table, the 31-day table, February in a
// common year, or February in a leap year. context[0] must be the year.
func newMonth(monthRecipe, dayRecipe mark.Recipe) (*branch, error) {
	monthMark, err := monthRecipe.Resolve(monthBase, monthCap)
	if err != nil {
		return nil, err
	}
	dom, err := newDOM(dayRecipe)
	if err != nil {
		return nil, err
	}
	longDom, err := newLongDOM(dayRecipe)
	if err != nil {
		return nil, err
	}
	febDom, err := newFebDOM(dayRecipe)
	if err != nil {
		return nil, err
	}
	leapFebDom, err := newLeapFebDOM(dayRecipe)
	if err != nil {
		return nil, err
	}

	b := &branch{
		name:     "month",
		num:      monthMark,
		children: []Node{dom, longDom, febDom, leapFebDom},
	}
	b.whichChildFn = func(v int, ctx Ctx) Node {
		if isLongMonth(v) {
			return longDom
		}
		if v != 2 {
			return dom
		}
		if isLeapYear(ctx[0]) {
			return leapFebDom
		}
		return febDom
	}
	b.shortcutNext = noShortcut
	b.shortcutPrev = noShortcut
	return b, nil
}
