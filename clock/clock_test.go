package clock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldros/cronweave/mark"
)

func everyClock(t *testing.T) *Clock {
	t.Helper()
	h, err := mark.NewEvery(HourCap, 0)
	require.NoError(t, err)
	m, err := mark.NewEvery(MinuteCap, 0)
	require.NoError(t, err)
	s, err := mark.NewEvery(SecondCap, 0)
	require.NoError(t, err)
	c, err := New(h, m, s)
	require.NoError(t, err)
	return c
}

// TestEveryClockNextIsOneSecond checks that with all digits wildcard, a
// single leap moves the clock forward exactly one second, carrying a day
// only at midnight rollover.
func TestEveryClockNextIsOneSecond(t *testing.T) {
	c := everyClock(t)

	next, carry := c.Next(Triple{23, 59, 59}, 1, true)
	require.Equal(t, Triple{0, 0, 0}, next)
	require.Equal(t, 1, carry)

	next, carry = c.Next(Triple{12, 30, 0}, 1, true)
	require.Equal(t, Triple{12, 30, 1}, next)
	require.Equal(t, 0, carry)
}

func TestEveryClockPrevIsOneSecond(t *testing.T) {
	c := everyClock(t)

	prev, borrow := c.Prev(Triple{0, 0, 0}, 1, true)
	require.Equal(t, Triple{23, 59, 59}, prev)
	require.Equal(t, 1, borrow)
}

func TestSoloHourConstrainsMinuteCarry(t *testing.T) {
	h, err := mark.NewSolo(9, 0, HourCap)
	require.NoError(t, err)
	m, err := mark.NewEvery(MinuteCap, 0)
	require.NoError(t, err)
	s, err := mark.NewEvery(SecondCap, 0)
	require.NoError(t, err)
	c, err := New(h, m, s)
	require.NoError(t, err)

	require.True(t, c.Contains(Triple{9, 0, 0}))
	require.False(t, c.Contains(Triple{10, 0, 0}))

	next, carry := c.Next(Triple{9, 59, 59}, 1, true)
	require.Equal(t, Triple{9, 0, 0}, next)
	require.Equal(t, 1, carry)
}

func TestNewRejectsWrongRange(t *testing.T) {
	badHour, err := mark.NewEvery(12, 0)
	require.NoError(t, err)
	m, err := mark.NewEvery(MinuteCap, 0)
	require.NoError(t, err)
	s, err := mark.NewEvery(SecondCap, 0)
	require.NoError(t, err)
	_, err = New(badHour, m, s)
	require.Error(t, err)
}
