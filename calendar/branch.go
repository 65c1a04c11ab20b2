package calendar

import "github.com/caldros/cronweave/mark"

// shortcutFn attempts to accelerate a traversal past whole admissible
// cycles. ok reports whether the shortcut applies at all; when it does and
// err is nil, num/leapLeft replace the caller's values. When it does and
// err is non-nil (always *cronerr.Inadequate), the traversal fails
// immediately. ok=false leaves the caller's num/leapLeft untouched and
// traversal falls back to per-iteration decrementing.
type shortcutFn func(num, leapLeft int) (newNum, newLeapLeft int, ok bool, err error)

func noShortcut(num, leapLeft int) (int, int, bool, error) { return num, leapLeft, false, nil }

// branch is the internal (non-leaf) calendar digit shared by WeekNode,
// Month, MonthW and the Year root variants. Each concrete constructor
// supplies the behavior that differs - the Mark, the children, and (as
// plain closures rather than a class hierarchy) how a value picks a child
// and the shortcut formulas. TotalCap and the traversal are shared.
type branch struct {
	name     string
	num      mark.Mark
	children []Node

	whichChildFn func(v int, ctx Ctx) Node
	shortcutNext shortcutFn
	shortcutPrev shortcutFn
}

var _ Node = (*branch)(nil)

func (b *branch) firstValue() int { nums := b.num.Nums(); return nums[0] }
func (b *branch) lastValue() int  { nums := b.num.Nums(); return nums[len(nums)-1] }
func (b *branch) isLeaf() bool                   { return false }
func (b *branch) whichChild(v int, ctx Ctx) Node { return b.whichChildFn(v, ctx) }
func (b *branch) contains(v int) bool            { return b.num.Contains(v) }

// TotalCap asks whichChild for every value this digit admits and sums the
// children's own TotalCap. No closed-form cache: the digit ranges here
// (months, weeks) are small enough that the O(|M|) walk costs nothing in
// practice.
func (b *branch) TotalCap(ctx Ctx) int {
	total := 0
	for _, v := range b.num.Nums() {
		total += b.whichChildFn(v, ctx).TotalCap(pushCtx(ctx, v))
	}
	return total
}

func (b *branch) AmountBehind(n []int, ctx Ctx, passNow bool) int {
	rest, current := popLast(n)
	num, leap := b.num.Prev(current, 1, false)
	if leap > 0 {
		return 0
	}
	node := b.whichChildFn(num, ctx)
	amount := node.AmountBehind(rest, pushCtx(ctx, num), passNow)
	for {
		var l int
		num, l = b.num.Prev(num, 1, true)
		if l > 0 {
			return amount
		}
		node = b.whichChildFn(num, ctx)
		amount += node.TotalCap(pushCtx(ctx, num))
	}
}

func (b *branch) AmountAhead(n []int, ctx Ctx, passNow bool) int {
	rest, current := popLast(n)
	num, leap := b.num.Next(current, 1, false)
	if leap > 0 {
		return 0
	}
	node := b.whichChildFn(num, ctx)
	amount := node.AmountAhead(rest, pushCtx(ctx, num), passNow)
	for {
		var l int
		num, l = b.num.Next(num, 1, true)
		if l > 0 {
			return amount
		}
		node = b.whichChildFn(num, ctx)
		amount += node.TotalCap(pushCtx(ctx, num))
	}
}

func (b *branch) Prev(n []int, ctx Ctx, leap int, passNow bool) ([]int, error) {
	rest, current := popLast(n)
	num, l := b.num.Prev(current, 1, false)
	if l > 0 {
		return nil, b.inadequate("prev")
	}
	node := b.whichChildFn(num, ctx)
	leapLeft := leap - node.AmountBehind(rest, pushCtx(ctx, num), passNow)
	if leapLeft <= 0 {
		tail, err := node.Prev(rest, pushCtx(ctx, num), leap, passNow)
		if err != nil {
			return nil, err
		}
		return append(tail, num), nil
	}

	num, l = b.num.Prev(num, 1, true)
	if l > 0 {
		return nil, b.inadequate("prev")
	}
	if num2, leapLeft2, ok, err := b.shortcutPrev(num, leapLeft); ok {
		if err != nil {
			return nil, err
		}
		num, leapLeft = num2, leapLeft2
	}

	node = b.whichChildFn(num, ctx)
	totalCap := node.TotalCap(pushCtx(ctx, num))
	for totalCap < leapLeft {
		leapLeft -= totalCap
		num, l = b.num.Prev(num, 1, true)
		if l > 0 {
			return nil, b.inadequate("prev")
		}
		node = b.whichChildFn(num, ctx)
		totalCap = node.TotalCap(pushCtx(ctx, num))
	}

	ctx2 := pushCtx(ctx, num)
	resets := resetTuple(node, ctx2, true)
	tail, err := node.Prev(resets, ctx2, leapLeft, false)
	if err != nil {
		return nil, err
	}
	return append(tail, num), nil
}

func (b *branch) Next(n []int, ctx Ctx, leap int, passNow bool) ([]int, error) {
	rest, current := popLast(n)
	num, l := b.num.Next(current, 1, false)
	if l > 0 {
		return nil, b.inadequate("next")
	}
	node := b.whichChildFn(num, ctx)
	leapLeft := leap - node.AmountAhead(rest, pushCtx(ctx, num), passNow)
	if leapLeft <= 0 {
		tail, err := node.Next(rest, pushCtx(ctx, num), leap, passNow)
		if err != nil {
			return nil, err
		}
		return append(tail, num), nil
	}

	num, l = b.num.Next(num, 1, true)
	if l > 0 {
		return nil, b.inadequate("next")
	}
	if num2, leapLeft2, ok, err := b.shortcutNext(num, leapLeft); ok {
		if err != nil {
			return nil, err
		}
		num, leapLeft = num2, leapLeft2
	}

	node = b.whichChildFn(num, ctx)
	totalCap := node.TotalCap(pushCtx(ctx, num))
	for totalCap < leapLeft {
		leapLeft -= totalCap
		num, l = b.num.Next(num, 1, true)
		if l > 0 {
			return nil, b.inadequate("next")
		}
		node = b.whichChildFn(num, ctx)
		totalCap = node.TotalCap(pushCtx(ctx, num))
	}

	ctx2 := pushCtx(ctx, num)
	resets := resetTuple(node, ctx2, false)
	tail, err := node.Next(resets, ctx2, leapLeft, false)
	if err != nil {
		return nil, err
	}
	return append(tail, num), nil
}
