package txctx

import (
	"context"
)

type key struct{}
type value struct {
	queryDetails QueryDetails
	authDetails  AuthDetails
}

// QueryDetails captures the execution details of one recurrence query: which
// named schedule was queried, which operation ran against it, and how far
// it leapt, so request logging can report them without threading extra
// parameters through every handler signature.
type QueryDetails struct {
	ScheduleName string
	Operation    string
	Leap         int
}

// AuthDetails captures who a request was attributed to, as extracted by the
// audit log's unverified claim parse.
type AuthDetails struct {
	Subject string
}

// Context initializes the storage this package's setters write into.
func Context(ctx context.Context) context.Context {
	return context.WithValue(ctx, key{}, &value{})
}

// SetQueryDetails sets the query details in a context value that has been
// initialized using Context.
func SetQueryDetails(ctx context.Context, details QueryDetails) {
	if val, ok := ctx.Value(key{}).(*value); ok {
		val.queryDetails = details
	}
}

// GetQueryDetails gets the query details from a context value if present.
func GetQueryDetails(ctx context.Context) QueryDetails {
	if val, ok := ctx.Value(key{}).(*value); ok {
		return val.queryDetails
	}
	return QueryDetails{}
}

func SetAuthDetails(ctx context.Context, details AuthDetails) {
	if val, ok := ctx.Value(key{}).(*value); ok {
		val.authDetails = details
	}
}

func GetAuthDetails(ctx context.Context) AuthDetails {
	if val, ok := ctx.Value(key{}).(*value); ok {
		return val.authDetails
	}
	return AuthDetails{}
}
