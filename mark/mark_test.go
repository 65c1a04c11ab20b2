package mark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// allMarks builds one instance of each variant over the same [0,11] range,
// i.e. a month digit, for the properties below.
func allMarks(t *testing.T) map[string]Mark {
	t.Helper()
	solo, err := NewSolo(5, 0, 11)
	require.NoError(t, err)
	every, err := NewEvery(11, 0)
	require.NoError(t, err)
	seq, err := NewSeq(1, -1, 2, 0, 11)
	require.NoError(t, err)
	enum, err := NewEnum([]int{1, 4, 9}, 0, 11)
	require.NoError(t, err)
	return map[string]Mark{"solo": solo, "every": every, "seq": seq, "enum": enum}
}

// TestContainsMatchesNums checks that Contains agrees with Nums for every
// value in range, for every variant.
func TestContainsMatchesNums(t *testing.T) {
	for name, m := range allMarks(t) {
		set := map[int]bool{}
		for _, n := range m.Nums() {
			set[n] = true
		}
		for v := m.Base(); v <= m.Cap(); v++ {
			require.Equal(t, set[v], m.Contains(v), "%s: Contains(%d)", name, v)
		}
		require.Equal(t, len(set), m.Len(), "%s: Len", name)
	}
}

// TestCostAheadBehindSumsToLen checks that for an admissible n, CostAhead and
// CostBehind (with passNow) account for every admissible value exactly once:
// CostBehind(n, true) + CostAhead(n, true) + 1 == Len(), since n is counted
// by neither.
func TestCostAheadBehindSumsToLen(t *testing.T) {
	for name, m := range allMarks(t) {
		for _, n := range m.Nums() {
			ahead := m.CostAhead(n, true)
			behind := m.CostBehind(n, true)
			require.Equal(t, m.Len(), ahead+behind+1, "%s: n=%d ahead=%d behind=%d", name, n, ahead, behind)
		}
	}
}

// TestNextThenPrevRoundTrips checks that stepping leap admissible values
// forward from an admissible n, then the same leap count back with passNow
// true, returns to n (borrow/carry cancel out).
func TestNextThenPrevRoundTrips(t *testing.T) {
	for name, m := range allMarks(t) {
		for _, n := range m.Nums() {
			for leap := 1; leap <= 3; leap++ {
				fwd, carry := m.Next(n, leap, true)
				require.True(t, m.Contains(fwd), "%s: Next(%d,%d) -> %d not admissible", name, n, leap, fwd)
				back, borrow := m.Prev(fwd, leap, true)
				require.Equal(t, n, back, "%s: round trip n=%d leap=%d", name, n, leap)
				require.Equal(t, carry, borrow, "%s: round trip borrow/carry n=%d leap=%d", name, n, leap)
			}
		}
	}
}

func TestSoloResolvesNegativeAndZero(t *testing.T) {
	last, err := NewSolo(-1, 0, 11)
	require.NoError(t, err)
	require.Equal(t, 11, last.Nums()[0])

	first, err := NewSolo(0, 0, 11)
	require.NoError(t, err)
	require.Equal(t, 0, first.Nums()[0])
}

func TestEveryCoversEntireRange(t *testing.T) {
	e, err := NewEvery(11, 0)
	require.NoError(t, err)
	require.Equal(t, 12, e.Len())
	for v := 0; v <= 11; v++ {
		require.True(t, e.Contains(v))
	}
}

func TestSeqStrideAndWrap(t *testing.T) {
	// start=9, end=1 (wraps through cap): 9, 11, 1 with stride 2 over [0,11].
	s, err := NewSeq(9, 1, 2, 0, 11)
	require.NoError(t, err)
	require.Equal(t, []int{9, 11, 1}, s.Nums())
	require.True(t, s.Contains(11))
	require.False(t, s.Contains(10))
}

func TestEnumSortsAndDeduplicatesLookup(t *testing.T) {
	e, err := NewEnum([]int{9, -1, 0}, 0, 11)
	require.NoError(t, err)
	// -1 -> 11 (last), 0 -> 0 (base), plus 9.
	require.Equal(t, []int{0, 9, 11}, e.Nums())
}
