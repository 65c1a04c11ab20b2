// Package mark implements the constraint digit of the recurrence engine: a
// Mark is a constraint set over a single integer in [base, cap] that answers
// membership, predecessor/successor with borrow/carry, and ahead/behind
// counts. The four Mark variants (Solo, Every, Seq, Enum) are tagged structs
// behind one interface rather than a class hierarchy, matching the
// traversal contract used throughout package calendar and package clock.
package mark

import "fmt"

// Mark is the capability set shared by every digit constraint: membership,
// bidirectional stepping with borrow/carry bookkeeping, and ahead/behind
// counts used by calendar.Node to compute how many admissible points a leap
// count must cross.
//
// Prev/Next accept passNow: when false, n itself counts as the first step if
// n is admissible (a leap of 1 returns n); when true, n counts as the zeroth
// step, so a leap of 1 moves strictly past n.
type Mark interface {
	// Base and Cap bound every admissible value: base <= v <= cap.
	Base() int
	Cap() int
	// Len is the number of admissible values, i.e. |M|.
	Len() int
	// Contains reports whether n is admissible.
	Contains(n int) bool
	// Nums returns the sorted, admissible values. Callers must not mutate
	// the returned slice.
	Nums() []int
	// Prev returns the leap-th admissible value at or before n, and the
	// number of times the search wrapped past base (a borrow).
	Prev(n, leap int, passNow bool) (val, borrow int)
	// Next is the symmetric successor operation; its second return is a
	// carry past cap.
	Next(n, leap int, passNow bool) (val, carry int)
	// CostAhead counts admissible values strictly greater than n (plus n
	// itself when passNow is false and n is admissible).
	CostAhead(n int, passNow bool) int
	// CostBehind is the symmetric count of admissible values below n.
	CostBehind(n int, passNow bool) int
}

// resolveValue normalizes a spec value against [base, cap]: 0 means "first
// element" (base), negative values count from the end (-1 == cap).
func resolveValue(v, base, cap int) int {
	switch {
	case v == 0:
		return base
	case v < 0:
		return cap + 1 + v
	default:
		return v
	}
}

// errRange reports a constructor value falling outside [base, cap].
func errRange(what string, v, base, cap int) error {
	return fmt.Errorf("mark: %s %d out of range [%d, %d]", what, v, base, cap)
}
