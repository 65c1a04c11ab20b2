package engine

import (
	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/clock"
	"github.com/caldros/cronweave/mark"
)

// Engine is the recurrence façade: a calendar.Calendar for one of the four
// modes plus a clock.Clock: the second/minute/hour cascade runs first,
// then the residual carry/borrow plus one becomes the calendar's own
// leap.
type Engine struct {
	mode  calendar.Mode
	cal   *calendar.Calendar
	clock *clock.Clock
}

// New builds an Engine. calRecipes must have calendar.Mode.Digits() entries
// in reverse calendar-tuple order (day-like first, year last); hour,
// minute and second are resolved clock Marks.
func New(mode calendar.Mode, calRecipes []mark.Recipe, hour, minute, second mark.Mark) (*Engine, error) {
	cal, err := calendar.New(mode, calRecipes)
	if err != nil {
		return nil, err
	}
	clk, err := clock.New(hour, minute, second)
	if err != nil {
		return nil, err
	}
	return &Engine{mode: mode, cal: cal, clock: clk}, nil
}

// Mode reports the Engine's calendar mode.
func (e *Engine) Mode() calendar.Mode { return e.mode }

// Next returns the leap-th admissible instant at or after now. passNow
// controls whether now itself, if admissible, counts as the first step.
func (e *Engine) Next(now Instant, leap int, passNow bool) (Instant, error) {
	clk, carry := e.clock.Next(encodeClockTriple(now), leap, passNow)
	calTuple, err := e.cal.Next(encodeCalendar(e.mode, now), carry+1, false)
	if err != nil {
		return Instant{}, err
	}
	return decode(e.mode, calTuple, clk), nil
}

// Prev is the symmetric predecessor operation.
func (e *Engine) Prev(now Instant, leap int, passNow bool) (Instant, error) {
	clk, borrow := e.clock.Prev(encodeClockTriple(now), leap, passNow)
	calTuple, err := e.cal.Prev(encodeCalendar(e.mode, now), borrow+1, false)
	if err != nil {
		return Instant{}, err
	}
	return decode(e.mode, calTuple, clk), nil
}

// Contains reports whether now is itself admissible on every calendar and
// clock digit.
func (e *Engine) Contains(now Instant) bool {
	return e.cal.Contains(encodeCalendar(e.mode, now)) && e.clock.Contains(encodeClockTriple(now))
}
