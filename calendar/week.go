package calendar

import "github.com/caldros/cronweave/mark"

// newWeekNode builds a week-of-month or week-of-year digit: a single DOW
// child, with a shortcut that skips whole admissible weeks at once since
// every value routes to the same child.
func newWeekNode(name string, weekRecipe, dowRecipe mark.Recipe, base, cap int) (*branch, error) {
	weekMark, err := weekRecipe.Resolve(base, cap)
	if err != nil {
		return nil, err
	}
	dow, err := newDOW(dowRecipe)
	if err != nil {
		return nil, err
	}
	b := &branch{
		name:     name,
		num:      weekMark,
		children: []Node{dow},
	}
	b.whichChildFn = func(int, Ctx) Node { return dow }
	b.shortcutNext = weekShortcut(b, dow, true)
	b.shortcutPrev = weekShortcut(b, dow, false)
	return b, nil
}

// weekShortcut accelerates week-digit traversal: since every week value
// routes to the same DOW child, stride whole weeks can be skipped in one
// Mark step instead of one at a time.
func weekShortcut(b *branch, dow *Leaf, forward bool) shortcutFn {
	cap := dow.TotalCap(nil)
	return func(n, leapLeft int) (int, int, bool, error) {
		stride := (leapLeft - 1) / cap
		if stride <= 0 {
			return n, leapLeft, false, nil
		}
		var amount int
		if forward {
			amount = b.num.CostAhead(n, false)
		} else {
			amount = b.num.CostBehind(n, false)
		}
		if amount < stride {
			return 0, 0, true, b.inadequate(dirName(forward))
		}
		var num int
		if forward {
			num, _ = b.num.Next(n, stride, true)
		} else {
			num, _ = b.num.Prev(n, stride, true)
		}
		return num, leapLeft - stride*cap, true, nil
	}
}

func dirName(forward bool) string {
	if forward {
		return "next"
	}
	return "prev"
}

const (
	womBase, womCap     = 1, 4
	longWomCap          = 5
	woyBase, woyCap     = 1, 52
	longWoyCap          = 53
)

func newWOM(weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	return newWeekNode("week-of-month", weekRecipe, dowRecipe, womBase, womCap)
}

func newLongWOM(weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	return newWeekNode("week-of-month-5", weekRecipe, dowRecipe, womBase, longWomCap)
}

func newWOY(weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	return newWeekNode("week-of-year", weekRecipe, dowRecipe, woyBase, woyCap)
}

func newLongWOY(weekRecipe, dowRecipe mark.Recipe) (*branch, error) {
	return newWeekNode("week-of-year-53", weekRecipe, dowRecipe, woyBase, longWoyCap)
}
