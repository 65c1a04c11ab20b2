package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstantStringParseRoundTrip(t *testing.T) {
	in := Instant{Year: 2026, Month: 8, Day: 3, Hour: 9, Minute: 0, Second: 0}
	s := in.String()
	require.Equal(t, "2026-08-03 09:00:00", s)

	out, err := ParseInstant(s)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestParseInstantRejectsBadLayout(t *testing.T) {
	_, err := ParseInstant("2026/08/03")
	require.Error(t, err)
}
