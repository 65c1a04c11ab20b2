// Package httpapi exposes the recurrence engine over plain HTTP: named
// schedules are persisted in a schedulestore.Store, and the API compiles
// each one into an engine.Engine (or engine.Period, for start..end
// schedules) on demand to answer next/prev/contains/covers queries.
//
// Routing uses net/http's own method+pattern ServeMux (stdlib since Go
// 1.22) rather than a third-party router; everything else - logging,
// tracing, metrics, archiving - composes through this module's middleware
// packages.
package httpapi

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/caldros/cronweave/mailer"
	"github.com/caldros/cronweave/midware"
	"github.com/caldros/cronweave/notify"
	"github.com/caldros/cronweave/opttrace"
	"github.com/caldros/cronweave/schedulestore"
)

// Version is reported in the Server response header of every reply. The
// release process overrides it via -ldflags "-X ...httpapi.Version=v1.2.3".
var Version = "dev"

// emailSender is the subset of *mailer.SES the notify loop depends on,
// small enough for tests to fake without standing up real SES credentials.
type emailSender interface {
	Send(ctx context.Context, content string, email string, subject string) error
}

// Server serves the schedule API.
type Server struct {
	store          schedulestore.Store
	log            *logrus.Entry
	tracer         *opttrace.Tracer
	mailer         emailSender
	notifyTemplate string

	archiver  midware.Middleware
	reqLog    midware.Middleware
	overrides midware.Middleware
}

// Option configures a Server.
type Option func(*Server)

// WithMailer attaches an SES mailer used by the notification loop to email
// rendered schedule summaries.
func WithMailer(m *mailer.SES) Option {
	return func(s *Server) { s.mailer = m }
}

// WithEmailSender attaches any emailSender, primarily for tests that stand
// in for mailer.SES without real AWS credentials.
func WithEmailSender(m emailSender) Option {
	return func(s *Server) { s.mailer = m }
}

// WithNotifyTemplate overrides the default raymond template used to render
// a schedule's human-readable summary.
func WithNotifyTemplate(tpl string) Option {
	return func(s *Server) { s.notifyTemplate = tpl }
}

// WithArchiver attaches request-archiving middleware (typically
// auditlog.NewS3Archiver).
func WithArchiver(m midware.Middleware) Option {
	return func(s *Server) { s.archiver = m }
}

// WithPathOverrides attaches path overrides run ahead of the schedule
// routes - e.g. to mount static.PublicHandler or a corporate health
// checker. Overrides may not shadow paths under /v1/; registering one
// panics at Router time.
func WithPathOverrides(m midware.PathOverrides) Option {
	return func(s *Server) {
		s.overrides = midware.NewProtectedPathOverrides(m, []string{"/v1/"})
	}
}

const defaultSummaryTemplate = `{{Name}} ({{Cron}}, mode {{upper Mode}})` +
	`{{#if Description}} - {{Description}}{{/if}}` +
	`{{#if NextFires}} - next: {{first NextFires}}{{/if}}` +
	`{{#if PeriodEnd}} (spans {{span PeriodStart PeriodEnd}}){{/if}}`

// NewServer builds a Server backed by store. log is the base logrus.Entry
// request handlers enrich with per-request fields via reqlog; tracer opens a
// span around the next/prev and period-walk handlers.
func NewServer(store schedulestore.Store, log *logrus.Entry, reqLog midware.Middleware, tracer *opttrace.Tracer, opts ...Option) *Server {
	s := &Server{
		store:          store,
		log:            log,
		tracer:         tracer,
		reqLog:         reqLog,
		notifyTemplate: defaultSummaryTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the full handler chain: request logging and archiving
// middleware wrapping the schedule routes, plus /metrics and /healthz.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/schedules/{name}", s.handleGetSchedule)
	mux.HandleFunc("PUT /v1/schedules/{name}", s.handlePutSchedule)
	mux.HandleFunc("DELETE /v1/schedules/{name}", s.handleDeleteSchedule)
	mux.HandleFunc("POST /v1/schedules/{name}/next", s.handleNext)
	mux.HandleFunc("POST /v1/schedules/{name}/prev", s.handlePrev)
	mux.HandleFunc("GET /v1/schedules/{name}/contains", s.handleContains)
	mux.HandleFunc("POST /v1/schedules/{name}/next-start", s.handleNextStart)
	mux.HandleFunc("POST /v1/schedules/{name}/next-end", s.handleNextEnd)
	mux.HandleFunc("POST /v1/schedules/{name}/prev-start", s.handlePrevStart)
	mux.HandleFunc("POST /v1/schedules/{name}/prev-end", s.handlePrevEnd)
	mux.HandleFunc("GET /v1/schedules/{name}/covers", s.handleCovers)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /v1/openapi.json", openapiHandler())

	chain := midware.Chain{
		midware.TraceHeaders("", true),
		midware.ServerResponseHeader(midware.ServerFixed("cronweave", Version)),
	}
	if s.overrides != nil {
		chain = append(chain, s.overrides)
	}
	if s.reqLog != nil {
		chain = append(chain, s.reqLog)
	}
	if s.archiver != nil {
		chain = append(chain, s.archiver)
	}
	return chain.Wrap(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) renderSummary(sch schedulestore.Schedule, nextFires []string) (string, error) {
	return s.renderSummarySpan(sch, nextFires, "", "")
}

func (s *Server) renderSummarySpan(sch schedulestore.Schedule, nextFires []string, periodStart, periodEnd string) (string, error) {
	view := notify.ScheduleView{
		Name:        sch.Name,
		Cron:        sch.Cron,
		Mode:        sch.Mode,
		Description: sch.Description,
		NextFires:   nextFires,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	return notify.Render(s.notifyTemplate, view)
}
