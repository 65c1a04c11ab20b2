// Package clock implements the three-digit (hour, minute, second) chain at
// the bottom of the recurrence engine. Each digit is a mark.Mark; Clock
// composes them with the same borrow/carry propagation used by
// package calendar's Node, specialized to a fixed depth of three.
package clock

import (
	"fmt"

	"github.com/caldros/cronweave/mark"
)

const (
	HourCap   = 23
	MinuteCap = 59
	SecondCap = 59
)

// Triple is (hour, minute, second).
type Triple [3]int

// Clock is the fixed hour/minute/second digit chain.
type Clock struct {
	Hour   mark.Mark
	Minute mark.Mark
	Second mark.Mark
}

// New validates that each Mark is bounded to its digit's range and builds a
// Clock. base is always 0 for clock digits.
func New(hour, minute, second mark.Mark) (*Clock, error) {
	if err := checkRange("hour", hour, HourCap); err != nil {
		return nil, err
	}
	if err := checkRange("minute", minute, MinuteCap); err != nil {
		return nil, err
	}
	if err := checkRange("second", second, SecondCap); err != nil {
		return nil, err
	}
	return &Clock{Hour: hour, Minute: minute, Second: second}, nil
}

func checkRange(name string, m mark.Mark, cap int) error {
	if m.Base() != 0 || m.Cap() != cap {
		return fmt.Errorf("clock: %s mark must span [0, %d], got [%d, %d]", name, cap, m.Base(), m.Cap())
	}
	return nil
}

// Contains reports whether t is admissible on every digit.
func (c *Clock) Contains(t Triple) bool {
	return c.Hour.Contains(t[0]) && c.Minute.Contains(t[1]) && c.Second.Contains(t[2])
}

// Prev steps leap admissible triples back from now. The returned int is the
// borrow into the calendar: whole days subtracted. Each coarser digit always
// takes the finer digit's borrow as 1+borrow with passNow=false, the same
// cascade the engine's Prev uses one level up for the calendar digits - the
// Mark itself is what decides whether that is actual movement or just a
// snap onto the nearest admissible value.
func (c *Clock) Prev(now Triple, leap int, passNow bool) (Triple, int) {
	var out Triple
	s, borrow := c.Second.Prev(now[2], leap, passNow)
	out[2] = s

	m, mBorrow := c.Minute.Prev(now[1], 1+borrow, false)
	out[1] = m

	h, hBorrow := c.Hour.Prev(now[0], 1+mBorrow, false)
	out[0] = h

	return out, hBorrow
}

// Next is the symmetric successor operation; its second return is the carry
// of whole days into the calendar.
func (c *Clock) Next(now Triple, leap int, passNow bool) (Triple, int) {
	var out Triple
	s, carry := c.Second.Next(now[2], leap, passNow)
	out[2] = s

	m, mCarry := c.Minute.Next(now[1], 1+carry, false)
	out[1] = m

	h, hCarry := c.Hour.Next(now[0], 1+mCarry, false)
	out[0] = h

	return out, hCarry
}
