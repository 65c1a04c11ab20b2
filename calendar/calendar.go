package calendar

import (
	"fmt"
	"strings"

	"github.com/caldros/cronweave/mark"
)

// Mode selects which calendar shape a Calendar traverses.
type Mode int

const (
	// ModeM is year -> month -> day-of-month.
	ModeM Mode = iota
	// ModeD is year -> day-of-year.
	ModeD
	// ModeW is ISO week-numbering year -> week-of-year -> day-of-week.
	ModeW
	// ModeMW is year -> month -> week-of-month -> day-of-week.
	ModeMW
)

func (m Mode) String() string {
	switch m {
	case ModeM:
		return "M"
	case ModeD:
		return "D"
	case ModeW:
		return "W"
	case ModeMW:
		return "MW"
	default:
		return "unknown"
	}
}

// ParseMode parses the mode names used in cron strings and stored schedule
// documents ("M", "D", "W", "MW", case-insensitively) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "M":
		return ModeM, nil
	case "D":
		return ModeD, nil
	case "W":
		return ModeW, nil
	case "MW":
		return ModeMW, nil
	default:
		return 0, fmt.Errorf("calendar: unknown mode %q", s)
	}
}

// Digits reports how many recipes New expects for mode, in calendar tuple
// order (day-like first, year last).
func (m Mode) Digits() int {
	switch m {
	case ModeM:
		return 3
	case ModeD:
		return 2
	case ModeW:
		return 3
	case ModeMW:
		return 4
	default:
		return 0
	}
}

// Calendar is the tree-of-digits façade: given Marks (one per calendar
// digit, reverse order, year last) and a mode, it answers prev/next/
// contains over calendar tuples in that same reverse order.
type Calendar struct {
	mode Mode
	root Node
}

// New builds a Calendar. recipes must be supplied in reverse calendar-tuple
// order (day-like digit first, year last) and have exactly mode.Digits()
// entries.
func New(mode Mode, recipes []mark.Recipe) (*Calendar, error) {
	if len(recipes) != mode.Digits() {
		return nil, fmt.Errorf("calendar: mode %s wants %d recipes, got %d", mode, mode.Digits(), len(recipes))
	}
	var root Node
	var err error
	switch mode {
	case ModeM:
		root, err = newYear(recipes[2], recipes[1], recipes[0])
	case ModeD:
		root, err = newYearD(recipes[1], recipes[0])
	case ModeW:
		root, err = newYearW(recipes[2], recipes[1], recipes[0])
	case ModeMW:
		root, err = newYearMW(recipes[3], recipes[2], recipes[1], recipes[0])
	default:
		return nil, fmt.Errorf("calendar: unknown mode %d", mode)
	}
	if err != nil {
		return nil, err
	}
	return &Calendar{mode: mode, root: root}, nil
}

// Mode reports the Calendar's mode.
func (c *Calendar) Mode() Mode { return c.mode }

// Prev returns the leap-th admissible tuple at or before tuple (reverse
// order, year last). tuple is not mutated.
func (c *Calendar) Prev(tuple []int, leap int, passNow bool) ([]int, error) {
	cp := append([]int(nil), tuple...)
	return c.root.Prev(cp, nil, leap, passNow)
}

// Next is the symmetric successor operation.
func (c *Calendar) Next(tuple []int, leap int, passNow bool) ([]int, error) {
	cp := append([]int(nil), tuple...)
	return c.root.Next(cp, nil, leap, passNow)
}

// Contains reports whether tuple is admissible on every digit along its
// whichChild path.
func (c *Calendar) Contains(tuple []int) bool {
	return containsNode(c.root, append([]int(nil), tuple...), nil)
}

func containsNode(node Node, n []int, ctx Ctx) bool {
	rest, v := popLast(n)
	if !node.contains(v) {
		return false
	}
	if node.isLeaf() {
		return true
	}
	ctx2 := pushCtx(ctx, v)
	return containsNode(node.whichChild(v, ctx2), rest, ctx2)
}
