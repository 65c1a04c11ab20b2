// Copyright © 2021 Luther Systems, Ltd. All right reserved.

// Package reqlog provides request-scoped logging middleware: a
// midware.Middleware that assigns request ids, times each request, and
// carries logrus fields on the request context for handlers to enrich.
package reqlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/caldros/cronweave/midware"
	"github.com/caldros/cronweave/txctx"
)

func isHealthCheck(path string) bool {
	return strings.Contains(strings.ToLower(path), "healthcheck") || strings.Contains(strings.ToLower(path), "healthz")
}

type requestLogger struct {
	base        *logrus.Entry
	timer       Timer
	now         Time
	traceHeader string
}

var _ midware.Middleware = &requestLogger{}

// RequestLogger returns a midware.Middleware that associates logrus.Fields
// with a request's context.Context, retrievable through GetLogrusEntry, and
// logs the method, path, request id and duration of every request ("request
// served" at Info, or at Debug for health-check paths). traceHeader names the header
// carrying an upstream-assigned request id; one is generated with
// google/uuid when absent.
func RequestLogger(base *logrus.Entry, t Timer, now Time, traceHeader string) midware.Middleware {
	if traceHeader == "" {
		traceHeader = midware.DefaultTraceHeader
	}
	return &requestLogger{base: base, timer: t, now: now, traceHeader: traceHeader}
}

// Wrap implements midware.Middleware.
func (l *requestLogger) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var nowFn func() time.Time
		if l.now != nil {
			nowFn = l.now.Now
		}
		stopTimer := l.timer.StartTimer(nowFn)

		reqID := r.Header.Get(l.traceHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		ctx := newContextWithFields(r.Context(), logrus.Fields{
			"http_method": r.Method,
			"http_path":   r.URL.Path,
			"req_id":      reqID,
		})
		// Inner handlers and middleware record query/auth details through
		// txctx; the storage must exist before they run so the final log
		// line below can read what they wrote.
		ctx = txctx.Context(ctx)
		r = r.WithContext(ctx)

		GetLogrusEntry(ctx, l.base).Debug("request begin")

		span := trace.SpanFromContext(ctx)
		span.SetAttributes(attribute.String("app.request.id", reqID))

		next.ServeHTTP(w, r)

		mLog := GetLogrusEntry(ctx, l.base)
		dur := stopTimer()
		mLog = mLog.WithField("req_dur", dur)

		if qd := txctx.GetQueryDetails(ctx); qd.Operation != "" {
			mLog = mLog.WithFields(logrus.Fields{
				"schedule": qd.ScheduleName,
				"op":       qd.Operation,
				"leap":     qd.Leap,
			})
		}
		if ad := txctx.GetAuthDetails(ctx); ad.Subject != "" {
			mLog = mLog.WithField("auth_sub", ad.Subject)
		}

		if isHealthCheck(r.URL.Path) {
			mLog.Debug("request served")
		} else {
			mLog.Info("request served")
		}
	})
}
