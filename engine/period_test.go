package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/mark"
)

// businessHoursPeriod opens at 09:00 and closes at 17:00 every day.
func businessHoursPeriod(t *testing.T) *Period {
	t.Helper()
	start := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SoloRecipe(9), mark.SoloRecipe(0), mark.SoloRecipe(0))
	end := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.SoloRecipe(17), mark.SoloRecipe(0), mark.SoloRecipe(0))
	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

// Membership is "the most recent start is more recent than the most
// recent end".
func TestPeriodCoversDuringWindow(t *testing.T) {
	p := businessHoursPeriod(t)

	covered, err := p.Covers(Instant{2023, 6, 15, 12, 0, 0})
	require.NoError(t, err)
	require.True(t, covered)

	notCovered, err := p.Covers(Instant{2023, 6, 15, 20, 0, 0})
	require.NoError(t, err)
	require.False(t, notCovered)

	alsoNotCovered, err := p.Covers(Instant{2023, 6, 15, 6, 0, 0})
	require.NoError(t, err)
	require.False(t, alsoNotCovered)
}

func TestNewPeriodRejectsModeMismatch(t *testing.T) {
	m := newModeMEngine(t, mark.Every(), mark.Every(), mark.Every(),
		mark.Every(), mark.Every(), mark.Every())
	mw := newModeMWEveryEngine(t)
	_, err := NewPeriod(m, mw)
	require.Error(t, err)
	require.Equal(t, calendar.ModeM, m.Mode())
}
