package mark

import "sort"

// Enum admits an explicit, unordered-at-construction list of values, each
// resolved through the same zero/negative rules as Solo, then sorted.
type Enum struct {
	base, maxVal int
	nums         []int
}

var _ Mark = (*Enum)(nil)

// NewEnum constructs an Enum mark from the given values. At least two
// distinct values are required; use Solo for a single value.
func NewEnum(vals []int, base, maxVal int) (*Enum, error) {
	if maxVal <= base {
		return nil, errRange("enum max", maxVal, base, maxVal)
	}
	nums := make([]int, len(vals))
	for i, v := range vals {
		switch {
		case v < 0:
			nums[i] = maxVal + 1 + v
		case v == 0:
			nums[i] = base
		default:
			if v < base || v > maxVal {
				return nil, errRange("enum value", v, base, maxVal)
			}
			nums[i] = v
		}
	}
	sort.Ints(nums)
	if len(nums) < 2 {
		return nil, errRange("enum length", len(nums), 2, maxVal-base+1)
	}
	return &Enum{base: base, maxVal: maxVal, nums: nums}, nil
}

func (e *Enum) Base() int { return e.base }
func (e *Enum) Cap() int  { return e.maxVal }
func (e *Enum) Len() int  { return len(e.nums) }

func (e *Enum) Nums() []int {
	out := make([]int, len(e.nums))
	copy(out, e.nums)
	return out
}

func (e *Enum) Contains(n int) bool {
	_, ok := sort.Find(len(e.nums), func(i int) int {
		switch {
		case e.nums[i] < n:
			return 1
		case e.nums[i] > n:
			return -1
		default:
			return 0
		}
	})
	return ok
}

// firstGreater returns the index of the first element strictly greater than
// n, or len(nums) if none.
func (e *Enum) firstGreater(n int) int {
	return sort.Search(len(e.nums), func(i int) bool { return e.nums[i] > n })
}

// firstAtLeast returns the index of the first element >= n, or len(nums) if
// none.
func (e *Enum) firstAtLeast(n int) int {
	return sort.Search(len(e.nums), func(i int) bool { return e.nums[i] >= n })
}

func (e *Enum) Prev(n, leap int, passNow bool) (int, int) {
	cap := len(e.nums)
	gt := e.firstGreater(n)
	idx := gt - 1
	if idx == -1 {
		div, mod := floorDivMod(leap-1, cap)
		return e.nums[cap-1-mod], div + 1
	}
	if gt == cap {
		if passNow && e.nums[cap-1] == n {
			leap++
		}
		div, mod := floorDivMod(leap-1, cap)
		return e.nums[cap-1-mod], div
	}
	if passNow && e.nums[idx] == n {
		leap++
	}
	dist := leap - 1 - idx
	if dist <= 0 {
		return e.nums[-dist], 0
	}
	div, mod := floorDivMod(dist-1, cap)
	return e.nums[cap-1-mod], div + 1
}

func (e *Enum) Next(n, leap int, passNow bool) (int, int) {
	cap := len(e.nums)
	idx := e.firstAtLeast(n)
	if idx == cap {
		div, mod := floorDivMod(leap-1, cap)
		return e.nums[mod], div + 1
	}
	if idx == 0 {
		if passNow && e.nums[0] == n {
			leap++
		}
		div, mod := floorDivMod(leap-1, cap)
		return e.nums[mod], div
	}
	if passNow && e.nums[idx] == n {
		leap++
	}
	dist := leap - 1 - (cap - 1 - idx)
	if dist <= 0 {
		return e.nums[idx+leap-1], 0
	}
	div, mod := floorDivMod(dist-1, cap)
	return e.nums[mod], div + 1
}

func (e *Enum) CostBehind(n int, passNow bool) int {
	cap := len(e.nums)
	gt := e.firstGreater(n)
	idx := gt - 1
	if idx == -1 {
		return 0
	}
	if gt == cap {
		if passNow && e.nums[cap-1] == n {
			return cap - 1
		}
		return cap
	}
	if passNow && e.nums[idx] == n {
		return idx
	}
	return idx + 1
}

func (e *Enum) CostAhead(n int, passNow bool) int {
	cap := len(e.nums)
	idx := e.firstAtLeast(n)
	if idx == cap {
		return 0
	}
	if idx == 0 {
		if passNow && e.nums[0] == n {
			return cap - 1
		}
		return cap
	}
	if passNow && e.nums[idx] == n {
		return cap - 1 - idx
	}
	return cap - idx
}

// floorDivMod is floored division with its matching modulus (mod carries
// the divisor's sign), used by the leap/cap bookkeeping above.
func floorDivMod(a, b int) (div, mod int) {
	div = a / b
	mod = a % b
	if mod != 0 && (mod < 0) != (b < 0) {
		div--
		mod += b
	}
	return div, mod
}
