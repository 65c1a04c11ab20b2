// Package calendar implements the tree of calendar digits (year down to
// day-of-something) that sits above package clock in the recurrence
// engine. Each digit is a Node: a Mark plus children selected by a
// whichChild(value, context) rule that encodes leap-year, long-month and
// 53-week-year branching.
package calendar

// Ctx accumulates ancestor digit values top-down (outermost ancestor -
// typically the year - first), extended as the tree descends. whichChild
// rules consult it for things like leap-year and month length.
type Ctx []int

func pushCtx(ctx Ctx, v int) Ctx {
	out := make(Ctx, len(ctx)+1)
	copy(out, ctx)
	out[len(ctx)] = v
	return out
}

// popLast splits n into everything but its last element, and the last
// element itself - the current digit's value, following the tuple
// convention (reverse positional order, least significant digit first).
func popLast(n []int) (rest []int, v int) {
	last := len(n) - 1
	return n[:last], n[last]
}

// Node is one digit of the calendar tree.
type Node interface {
	// TotalCap is the count of admissible leaf tuples under this node for
	// the given ancestor context.
	TotalCap(ctx Ctx) int
	// AmountAhead counts admissible tuples strictly ahead of n (the
	// remaining reverse-ordered tuple, this node's value last).
	AmountAhead(n []int, ctx Ctx, passNow bool) int
	// AmountBehind is the symmetric count behind n.
	AmountBehind(n []int, ctx Ctx, passNow bool) int
	// Prev returns the leap-th admissible tuple at or before n (reverse
	// order, this node's chosen value last).
	Prev(n []int, ctx Ctx, leap int, passNow bool) ([]int, error)
	// Next is the symmetric successor operation.
	Next(n []int, ctx Ctx, leap int, passNow bool) ([]int, error)

	// firstValue and lastValue are this node's own first and last
	// admissible mark values (not necessarily its base/cap).
	firstValue() int
	lastValue() int
	isLeaf() bool
	whichChild(v int, ctx Ctx) Node
	contains(v int) bool
}

// resetTuple computes the first (wantLast=false) or last (wantLast=true)
// admissible descendant tuple of node, given the context at node's own
// level. whichChild is consulted at every level, since the last-in-mark
// value may pick a child whose own last admissible tuple is smaller than
// its nominal cap (e.g. February 29 vs 28).
func resetTuple(node Node, ctx Ctx, wantLast bool) []int {
	v := node.firstValue()
	if wantLast {
		v = node.lastValue()
	}
	if node.isLeaf() {
		return []int{v}
	}
	ctx2 := pushCtx(ctx, v)
	child := node.whichChild(v, ctx2)
	return append(resetTuple(child, ctx2, wantLast), v)
}
