package calendar

import "github.com/caldros/cronweave/mark"

const (
	yearBase, yearCap = 1, 9999
)

// weeksInYear reports whether the ISO-8601 week-numbering year has 53 weeks
// instead of 52: the calendar year starts on a Thursday, or is a leap year
// starting on a Wednesday.
func weeksInYear(year int) bool {
	p := func(y int) int { return (y + y/4 - y/100 + y/400) % 7 }
	return p(year) == 4 || p(year-1) == 3
}

// yearLeapShortcut implements the 4-year acceleration described in the
// engine's shortcut rules: the admissible count of the 4 years ending at n
// (each year's own child, via whichChild, knows whether it is a leap year)
// sizes how many whole 4-year windows to skip. The skipped years are then
// counted exactly, one by one, because a window holding a non-leap century
// year (e.g. 5000) has one day fewer than that estimate.
func yearLeapShortcut(b *branch, forward bool) shortcutFn {
	step := b.num.Next
	if !forward {
		step = b.num.Prev
	}
	return func(n, leap int) (int, int, bool, error) {
		var amount int
		if forward {
			amount = b.num.CostAhead(n, false)
		} else {
			amount = b.num.CostBehind(n, false)
		}
		if amount < 4 {
			return n, leap, false, nil
		}
		cap := 0
		for x := 0; x < 4; x++ {
			year := n - x
			cap += b.whichChildFn(year, nil).TotalCap(Ctx{year})
		}
		stride := (leap - 1) / cap
		if stride == 0 {
			return n, leap, false, nil
		}
		if amount < stride*4 {
			return 0, 0, true, b.inadequate(dirName(forward))
		}
		num, leapLeft, l := n, leap, 0
		for i := 0; i < stride*4; i++ {
			leapLeft -= b.whichChildFn(num, nil).TotalCap(Ctx{num})
			num, l = step(num, 1, true)
		}
		if leapLeft < 1 {
			return n, leap, false, nil
		}
		if l > 0 {
			return 0, 0, true, b.inadequate(dirName(forward))
		}
		return num, leapLeft, true, nil
	}
}

// newYear builds the M-mode root: year -> month -> day-of-month.
func newYear(yearRecipe, monthRecipe, dayRecipe mark.Recipe) (*branch, error) {
	yearMark, err := yearRecipe.Resolve(yearBase, yearCap)
	if err != nil {
		return nil, err
	}
	month, err := newMonth(monthRecipe, dayRecipe)
	if err != nil {
		return nil, err
	}
	b := &branch{
		name:     "year",
		num:      yearMark,
		children: []Node{month},
	}
	b.whichChildFn = func(int, Ctx) Node { return month }
	b.shortcutNext = yearLeapShortcut(b, true)
	b.shortcutPrev = yearLeapShortcut(b, false)
	return b, nil
}

// newYearD builds the D-mode root: year -> day-of-year, branching between
// the 365- and 366-day variants on leap years.
func newYearD(yearRecipe, dayRecipe mark.Recipe) (*branch, error) {
	yearMark, err := yearRecipe.Resolve(yearBase, yearCap)
	if err != nil {
		return nil, err
	}
	doy, err := newDOY(dayRecipe)
	if err != nil {
		return nil, err
	}
	leapDoy, err := newLeapDOY(dayRecipe)
	if err != nil {
		return nil, err
	}
	b := &branch{
		name:     "year",
		num:      yearMark,
		children: []Node{doy, leapDoy},
	}
	b.whichChildFn = func(v int, ctx Ctx) Node {
		if isLeapYear(v) {
			return leapDoy
		}
		return doy
	}
	b.shortcutNext = yearLeapShortcut(b, true)
	b.shortcutPrev = yearLeapShortcut(b, false)
	return b, nil
}

// newYearW builds the W-mode root: ISO week-numbering year -> week-of-year
// -> day-of-week, branching between 52- and 53-week variants.
func newYearW(yearRecipe, weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	yearMark, err := yearRecipe.Resolve(yearBase, yearCap)
	if err != nil {
		return nil, err
	}
	woy, err := newWOY(weekRecipe, dowRecipe)
	if err != nil {
		return nil, err
	}
	longWoy, err := newLongWOY(weekRecipe, dowRecipe)
	if err != nil {
		return nil, err
	}
	b := &branch{
		name:     "year",
		num:      yearMark,
		children: []Node{woy, longWoy},
	}
	b.whichChildFn = func(v int, ctx Ctx) Node {
		if weeksInYear(v) {
			return longWoy
		}
		return woy
	}
	b.shortcutNext = noShortcut
	b.shortcutPrev = noShortcut
	return b, nil
}

// newYearMW builds the MW-mode root: year -> month -> week-of-month ->
// day-of-week.
func newYearMW(yearRecipe, monthRecipe, weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	yearMark, err := yearRecipe.Resolve(yearBase, yearCap)
	if err != nil {
		return nil, err
	}
	monthW, err := newMonthW(monthRecipe, weekRecipe, dowRecipe)
	if err != nil {
		return nil, err
	}
	b := &branch{
		name:     "year",
		num:      yearMark,
		children: []Node{monthW},
	}
	b.whichChildFn = func(int, Ctx) Node { return monthW }
	b.shortcutNext = noShortcut
	b.shortcutPrev = noShortcut
	return b, nil
}
