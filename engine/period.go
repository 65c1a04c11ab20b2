package engine

import "fmt"

// Period is a recurring start..end window: two Engines of the same mode,
// one describing the window's opening instants and one its closing
// instants.
type Period struct {
	start *Engine
	end   *Engine
}

// NewPeriod pairs a start and end Engine into a Period. Both must share the
// same calendar mode.
func NewPeriod(start, end *Engine) (*Period, error) {
	if start.Mode() != end.Mode() {
		return nil, fmt.Errorf("engine: period start mode %s does not match end mode %s", start.Mode(), end.Mode())
	}
	return &Period{start: start, end: end}, nil
}

// NextStart returns the leap-th admissible window opening at or after now.
func (p *Period) NextStart(now Instant, leap int, passNow bool) (Instant, error) {
	return p.start.Next(now, leap, passNow)
}

// NextEnd returns the leap-th admissible window close at or after now.
func (p *Period) NextEnd(now Instant, leap int, passNow bool) (Instant, error) {
	return p.end.Next(now, leap, passNow)
}

// PrevStart returns the leap-th admissible window opening at or before now.
func (p *Period) PrevStart(now Instant, leap int, passNow bool) (Instant, error) {
	return p.start.Prev(now, leap, passNow)
}

// PrevEnd returns the leap-th admissible window close at or before now.
func (p *Period) PrevEnd(now Instant, leap int, passNow bool) (Instant, error) {
	return p.end.Prev(now, leap, passNow)
}

// Covers reports whether now falls inside an open window: the most recent
// start at or before now is more recent than the most recent end at or
// before now. Both lookups include now itself (passNow=false), so a window
// whose start is exactly now counts as entered, and one whose end is
// exactly now counts as closed.
func (p *Period) Covers(now Instant) (bool, error) {
	lastStart, err := p.PrevStart(now, 1, false)
	if err != nil {
		return false, err
	}
	lastEnd, err := p.PrevEnd(now, 1, false)
	if err != nil {
		return false, err
	}
	return compareInstant(lastStart, lastEnd) > 0, nil
}

func compareInstant(a, b Instant) int {
	at, bt := a.toTime(), b.toTime()
	switch {
	case at.After(bt):
		return 1
	case at.Before(bt):
		return -1
	default:
		return 0
	}
}
