package txctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryDetailsRoundTrip(t *testing.T) {
	ctx := Context(context.Background())
	require.Equal(t, QueryDetails{}, GetQueryDetails(ctx))

	SetQueryDetails(ctx, QueryDetails{ScheduleName: "nightly", Operation: "next", Leap: 3})
	require.Equal(t, QueryDetails{ScheduleName: "nightly", Operation: "next", Leap: 3}, GetQueryDetails(ctx))
}

func TestAuthDetailsRoundTrip(t *testing.T) {
	ctx := Context(context.Background())
	require.Equal(t, AuthDetails{}, GetAuthDetails(ctx))

	SetAuthDetails(ctx, AuthDetails{Subject: "ops@example.com"})
	require.Equal(t, AuthDetails{Subject: "ops@example.com"}, GetAuthDetails(ctx))
}

func TestGetDetailsWithoutContextReturnsZeroValue(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, QueryDetails{}, GetQueryDetails(ctx))
	require.Equal(t, AuthDetails{}, GetAuthDetails(ctx))
}
