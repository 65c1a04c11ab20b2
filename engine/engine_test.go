package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/clock"
	"github.com/caldros/cronweave/mark"
)

func mustMark(t *testing.T, r mark.Recipe, base, cap int) mark.Mark {
	t.Helper()
	m, err := r.Resolve(base, cap)
	require.NoError(t, err)
	return m
}

// newModeMEngine builds an M-mode engine from a day/month/year recipe
// (calendar order) plus hour/minute/second recipes (clock order).
func newModeMEngine(t *testing.T, day, month, year, hour, minute, second mark.Recipe) *Engine {
	t.Helper()
	hourMark := mustMark(t, hour, 0, clock.HourCap)
	minuteMark := mustMark(t, minute, 0, clock.MinuteCap)
	secondMark := mustMark(t, second, 0, clock.SecondCap)
	e, err := New(calendar.ModeM, []mark.Recipe{day, month, year}, hourMark, minuteMark, secondMark)
	require.NoError(t, err)
	return e
}

// TestScenarioHourStrideWithinDay: */3 on the hour digit, minute and
// second pinned to 0, leaping within a single day.
func TestScenarioHourStrideWithinDay(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SeqRecipe(0, -1, 3), mark.SoloRecipe(0), mark.SoloRecipe(0))

	now := Instant{2023, 3, 1, 1, 0, 0}
	got, err := e.Next(now, 3, true)
	require.NoError(t, err)
	require.Equal(t, Instant{2023, 3, 1, 9, 0, 0}, got)
}

// TestScenarioHourStrideCrossesDay: the same expression with a bigger
// leap crosses midnight into the next day.
func TestScenarioHourStrideCrossesDay(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SeqRecipe(0, -1, 3), mark.SoloRecipe(0), mark.SoloRecipe(0))

	now := Instant{2023, 3, 1, 0, 0, 0}
	got, err := e.Next(now, 10, true)
	require.NoError(t, err)
	require.Equal(t, Instant{2023, 3, 2, 6, 0, 0}, got)
}

// TestScenarioHourStridePrevCrossesMonth: the same expression stepping
// backward across a month boundary (28 Feb 2023, not a leap year).
func TestScenarioHourStridePrevCrossesMonth(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SeqRecipe(0, -1, 3), mark.SoloRecipe(0), mark.SoloRecipe(0))

	now := Instant{2023, 3, 2, 0, 0, 0}
	got, err := e.Prev(now, 10, true)
	require.NoError(t, err)
	require.Equal(t, Instant{2023, 2, 28, 18, 0, 0}, got)
}

// TestScenarioYearStride: a leap of 4790 admissible days with
// hour/minute/second pinned, exercising the 4-year shortcut across a very
// large jump.
func TestScenarioYearStride(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SoloRecipe(3), mark.SoloRecipe(6), mark.SoloRecipe(50))

	now := Instant{4997, 6, 14, 3, 6, 50}
	got, err := e.Next(now, 4790, true)
	require.NoError(t, err)
	require.Equal(t, Instant{5010, 7, 27, 3, 6, 50}, got)
}

// With an all-Every clock and calendar, stepping by L admissible points
// is the same as stepping by L literal seconds.
func TestScenarioEverySecondMatchesLiteralSeconds(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.Every(), mark.Every(), mark.Every())

	now := Instant{2023, 6, 15, 12, 0, 0}
	got, err := e.Next(now, 90061, true) // 1 day, 1 hour, 1 minute, 1 second
	require.NoError(t, err)
	require.Equal(t, Instant{2023, 6, 16, 13, 1, 1}, got)

	back, err := e.Prev(got, 90061, true)
	require.NoError(t, err)
	require.Equal(t, now, back)
}

// Next and Prev always land on admissible instants.
func TestIdempotenceContainsNextAndPrev(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SeqRecipe(0, -1, 3), mark.SoloRecipe(0), mark.SoloRecipe(0))

	now := Instant{2023, 3, 1, 1, 0, 0}
	next, err := e.Next(now, 1, true)
	require.NoError(t, err)
	require.True(t, e.Contains(next))

	prev, err := e.Prev(now, 1, true)
	require.NoError(t, err)
	require.True(t, e.Contains(prev))
}

func newModeMWEveryEngine(t *testing.T) *Engine {
	t.Helper()
	hourMark := mustMark(t, mark.Every(), 0, clock.HourCap)
	minuteMark := mustMark(t, mark.Every(), 0, clock.MinuteCap)
	secondMark := mustMark(t, mark.Every(), 0, clock.SecondCap)
	e, err := New(calendar.ModeMW,
		[]mark.Recipe{mark.Every(), mark.Every(), mark.Every(), mark.Every()},
		hourMark, minuteMark, secondMark)
	require.NoError(t, err)
	return e
}

// An all-Every MW engine round-trips for reference instants in the last
// days of December, where week-of-month attribution crosses the year
// boundary.
func TestScenarioMWRoundTripAcrossYearEnd(t *testing.T) {
	e := newModeMWEveryEngine(t)

	for _, now := range []Instant{
		{2023, 12, 29, 10, 0, 0},
		{2023, 12, 30, 10, 0, 0},
		{2023, 12, 31, 10, 0, 0},
	} {
		for _, leap := range []int{1, 5, 100} {
			next, err := e.Next(now, leap, true)
			require.NoError(t, err, "now=%v leap=%d", now, leap)
			back, err := e.Prev(next, leap, true)
			require.NoError(t, err, "now=%v leap=%d", now, leap)
			require.Equal(t, now, back, "now=%v leap=%d", now, leap)
		}
	}
}

// Larger leaps always land strictly further out, on both sides of the
// reference instant.
func TestLeapMonotonicity(t *testing.T) {
	e := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SeqRecipe(0, -1, 3), mark.SoloRecipe(0), mark.SoloRecipe(0))

	now := Instant{2023, 3, 1, 1, 30, 0} // not itself admissible
	var prevs, nexts []Instant
	for leap := 1; leap <= 6; leap++ {
		p, err := e.Prev(now, leap, true)
		require.NoError(t, err)
		n, err := e.Next(now, leap, true)
		require.NoError(t, err)
		prevs = append(prevs, p)
		nexts = append(nexts, n)
	}
	before := func(a, b Instant) bool { return a.String() < b.String() }
	for i := 1; i < len(nexts); i++ {
		require.True(t, before(nexts[i-1], nexts[i]), "next leap %d vs %d", i, i+1)
		require.True(t, before(prevs[i], prevs[i-1]), "prev leap %d vs %d", i, i+1)
	}
	require.True(t, before(prevs[0], now))
	require.True(t, before(now, nexts[0]))
}

// TestModeMismatchWrongRecipeCount checks the construction boundary.
func TestModeMismatchWrongRecipeCount(t *testing.T) {
	hourMark := mustMark(t, mark.Every(), 0, clock.HourCap)
	minuteMark := mustMark(t, mark.Every(), 0, clock.MinuteCap)
	secondMark := mustMark(t, mark.Every(), 0, clock.SecondCap)
	_, err := New(calendar.ModeM, []mark.Recipe{mark.Every(), mark.Every()}, hourMark, minuteMark, secondMark)
	require.Error(t, err)
}
