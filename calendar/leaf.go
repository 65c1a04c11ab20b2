package calendar

import (
	"github.com/caldros/cronweave/cronerr"
	"github.com/caldros/cronweave/mark"
)

// Leaf is a terminal calendar digit: day-of-month, day-of-week, or
// day-of-year in one of their fixed-length variants.
type Leaf struct {
	name string
	num  mark.Mark
}

var _ Node = (*Leaf)(nil)

func newLeaf(name string, r mark.Recipe, base, cap int) (*Leaf, error) {
	m, err := r.Resolve(base, cap)
	if err != nil {
		return nil, err
	}
	return &Leaf{name: name, num: m}, nil
}

func (l *Leaf) TotalCap(ctx Ctx) int { return l.num.Len() }

func (l *Leaf) AmountAhead(n []int, ctx Ctx, passNow bool) int {
	return l.num.CostAhead(n[len(n)-1], passNow)
}

func (l *Leaf) AmountBehind(n []int, ctx Ctx, passNow bool) int {
	return l.num.CostBehind(n[len(n)-1], passNow)
}

func (l *Leaf) Prev(n []int, ctx Ctx, leap int, passNow bool) ([]int, error) {
	num, borrow := l.num.Prev(n[len(n)-1], leap, passNow)
	if borrow > 0 {
		return nil, &cronerr.Inadequate{Op: "prev", Digit: l.name}
	}
	return []int{num}, nil
}

func (l *Leaf) Next(n []int, ctx Ctx, leap int, passNow bool) ([]int, error) {
	num, carry := l.num.Next(n[len(n)-1], leap, passNow)
	if carry > 0 {
		return nil, &cronerr.Inadequate{Op: "next", Digit: l.name}
	}
	return []int{num}, nil
}

func (l *Leaf) firstValue() int { nums := l.num.Nums(); return nums[0] }
func (l *Leaf) lastValue() int  { nums := l.num.Nums(); return nums[len(nums)-1] }
func (l *Leaf) isLeaf() bool             { return true }
func (l *Leaf) whichChild(int, Ctx) Node { return nil }
func (l *Leaf) contains(v int) bool      { return l.num.Contains(v) }

// Leaf bases and caps, 1-based to match the civil calendar.
const (
	domBase, domCap     = 1, 30
	longDomCap          = 31
	febDomCap           = 28
	leapFebDomCap       = 29
	dowBase, dowCap     = 1, 7
	doyBase, doyCap     = 1, 365
	leapDoyCap          = 366
)

func newDOM(r mark.Recipe) (*Leaf, error)       { return newLeaf("day-of-month", r, domBase, domCap) }
func newLongDOM(r mark.Recipe) (*Leaf, error)   { return newLeaf("day-of-month-31", r, domBase, longDomCap) }
func newFebDOM(r mark.Recipe) (*Leaf, error)    { return newLeaf("day-of-february", r, domBase, febDomCap) }
func newLeapFebDOM(r mark.Recipe) (*Leaf, error) {
	return newLeaf("day-of-leap-february", r, domBase, leapFebDomCap)
}
func newDOW(r mark.Recipe) (*Leaf, error) { return newLeaf("day-of-week", r, dowBase, dowCap) }
func newDOY(r mark.Recipe) (*Leaf, error) { return newLeaf("day-of-year", r, doyBase, doyCap) }
func newLeapDOY(r mark.Recipe) (*Leaf, error) {
	return newLeaf("day-of-leap-year", r, doyBase, leapDoyCap)
}
