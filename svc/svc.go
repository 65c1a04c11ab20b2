package svc

import (
	"context"
	"time"
)

type noCancel struct {
	ctx context.Context
}

func (c noCancel) Deadline() (time.Time, bool)       { return time.Time{}, false }
func (c noCancel) Done() <-chan struct{}             { return nil }
func (c noCancel) Err() error                        { return nil }
func (c noCancel) Value(key interface{}) interface{} { return c.ctx.Value(key) }

// WithoutCancel returns a context that is never canceled.
// This is primarily used to re-use a context across work that outlives the
// request that started it (e.g. an async archive write after the response
// has been sent).
func WithoutCancel(ctx context.Context) context.Context {
	return noCancel{ctx: ctx}
}
