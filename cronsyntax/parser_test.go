package cronsyntax

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/mark"
)

func TestParsePointHourStride(t *testing.T) {
	cal, clk, err := ParsePoint("* * * */3 0 0", calendar.ModeM)
	require.NoError(t, err)
	require.Len(t, cal, 3)
	require.Equal(t, mark.Every(), cal[0]) // day
	require.Equal(t, mark.Every(), cal[1]) // month
	require.Equal(t, mark.Every(), cal[2]) // year
	require.Equal(t, mark.SeqRecipe(0, -1, 3), clk[0])
	require.Equal(t, mark.SoloRecipe(0), clk[1])
	require.Equal(t, mark.SoloRecipe(0), clk[2])
}

func TestParsePointDefaultsMissingSeconds(t *testing.T) {
	cal, clk, err := ParsePoint("* * * 9 0", calendar.ModeM)
	require.NoError(t, err)
	require.Len(t, cal, 3)
	require.Equal(t, mark.SoloRecipe(9), clk[0])
	require.Equal(t, mark.SoloRecipe(0), clk[1])
	require.Equal(t, mark.SoloRecipe(0), clk[2])
}

func TestParsePointEnum(t *testing.T) {
	cal, _, err := ParsePoint("* * 1,15 0 0 0", calendar.ModeM)
	require.NoError(t, err)
	require.Equal(t, mark.EnumRecipe([]int{1, 15}), cal[0]) // day, reversed to the front
}

func TestParsePointModeMismatch(t *testing.T) {
	_, _, err := ParsePoint("* * *", calendar.ModeM)
	require.Error(t, err)
}

func TestParsePointNoMatch(t *testing.T) {
	_, _, err := ParsePoint("* * bogus 0 0 0", calendar.ModeM)
	require.Error(t, err)
}

func TestParsePeriodSingleSpan(t *testing.T) {
	start, end, err := ParsePeriod("* 1..3 * 0 0 0", calendar.ModeM)
	require.NoError(t, err)
	require.Equal(t, mark.SoloRecipe(1), start.Cal[1]) // month
	require.Equal(t, mark.SoloRecipe(3), end.Cal[1])
	require.Equal(t, mark.Every(), start.Cal[0])
	require.Equal(t, start.Cal[0], end.Cal[0])
	require.Equal(t, start.Clock, end.Clock)
}

func TestParsePeriodRejectsSecondSpan(t *testing.T) {
	_, _, err := ParsePeriod("1..2 1..3 * 0 0 0", calendar.ModeM)
	require.Error(t, err)
}
