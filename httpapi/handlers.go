package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/caldros/cronweave/engine"
	"github.com/caldros/cronweave/opttrace"
	"github.com/caldros/cronweave/reqlog"
	"github.com/caldros/cronweave/schedulestore"
	"github.com/caldros/cronweave/txctx"
)

// instantLayout mirrors engine.Instant's own unexported layout constant so
// httpapi can round-trip an Instant through time.Time for lookahead-window
// comparisons without reaching into engine's internals.
const instantLayout = "2006-01-02 15:04:05"

func timeToInstant(t time.Time) engine.Instant {
	y, m, d := t.Date()
	return engine.Instant{Year: y, Month: int(m), Day: d, Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func nowInstant() engine.Instant {
	return timeToInstant(time.Now().UTC())
}

// recordQuery stashes the query's details on r's context via txctx, where
// reqlog's final "request served" line picks them up, so a schedule name,
// operation, and leap count land in the same log line as the request's
// req_id and duration without changing reqlog's own field set. The storage
// was initialized by reqlog's middleware; without it (direct handler tests)
// the set is a no-op and only the debug line below fires.
func (s *Server) recordQuery(r *http.Request, name, op string, leap int) {
	ctx := r.Context()
	txctx.SetQueryDetails(ctx, txctx.QueryDetails{ScheduleName: name, Operation: op, Leap: leap})
	reqlog.GetLogrusEntry(ctx, s.log).WithFields(logrus.Fields{
		"schedule": name,
		"op":       op,
		"leap":     leap,
	}).Debug("httpapi query")
}

// startWalkSpan opens a span around a Next/Prev-style leap walk. When the
// request's trace context carries opttrace's verbose flag the leap count is
// recorded on the span, since an unbounded leap argument is exactly the case
// that can blow a trace up.
func (s *Server) startWalkSpan(ctx context.Context, name string, leap int) trace.Span {
	_, span := s.tracer.Span(ctx, name)
	if opttrace.IsTraceContextVerbose(ctx) {
		span.SetAttributes(attribute.Int("cronweave.leap", leap))
	}
	return span
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func storeErrStatus(err error) int {
	if errors.Is(err, schedulestore.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sch, err := schedulestore.Get(r.Context(), s.store, name)
	if err != nil {
		writeError(w, storeErrStatus(err), err)
		return
	}

	resp := scheduleResponse{
		Name:        sch.Name,
		Cron:        sch.Cron,
		Mode:        sch.Mode,
		IsPeriod:    sch.IsPeriod,
		Description: sch.Description,
	}

	var nextFires []string
	var periodStart, periodEnd string
	if sch.IsPeriod {
		if period, err := buildPeriod(sch); err == nil {
			if start, err := period.NextStart(nowInstant(), 1, true); err == nil {
				nextFires = append(nextFires, start.String())
				periodStart = start.String()
				if end, err := period.NextEnd(start, 1, true); err == nil {
					periodEnd = end.String()
				}
			}
		}
	} else if eng, err := buildEngine(sch); err == nil {
		if next, err := eng.Next(nowInstant(), 1, true); err == nil {
			nextFires = append(nextFires, next.String())
		}
	}
	if summary, err := s.renderSummarySpan(sch, nextFires, periodStart, periodEnd); err == nil {
		resp.Summary = summary
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutSchedule(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sch := schedulestore.Schedule{
		Name:        name,
		Cron:        req.Cron,
		Mode:        req.Mode,
		IsPeriod:    req.IsPeriod,
		Description: req.Description,
	}

	var buildErr error
	if sch.IsPeriod {
		_, buildErr = buildPeriod(sch)
	} else {
		_, buildErr = buildEngine(sch)
	}
	if buildErr != nil {
		writeError(w, http.StatusBadRequest, buildErr)
		return
	}

	if err := schedulestore.Put(r.Context(), s.store, sch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := schedulestore.Delete(r.Context(), s.store, name); err != nil {
		writeError(w, storeErrStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadEngine(w http.ResponseWriter, r *http.Request) (*engine.Engine, bool) {
	name := r.PathValue("name")
	sch, err := schedulestore.Get(r.Context(), s.store, name)
	if err != nil {
		writeError(w, storeErrStatus(err), err)
		return nil, false
	}
	if sch.IsPeriod {
		writeError(w, http.StatusBadRequest, errors.New("httpapi: schedule is a period, use the -start/-end/covers routes"))
		return nil, false
	}
	eng, err := buildEngine(sch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return eng, true
}

func (s *Server) loadPeriod(w http.ResponseWriter, r *http.Request) (*engine.Period, bool) {
	name := r.PathValue("name")
	sch, err := schedulestore.Get(r.Context(), s.store, name)
	if err != nil {
		writeError(w, storeErrStatus(err), err)
		return nil, false
	}
	if !sch.IsPeriod {
		writeError(w, http.StatusBadRequest, errors.New("httpapi: schedule is a point form, use next/prev/contains"))
		return nil, false
	}
	period, err := buildPeriod(sch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return period, true
}

func decodePointRequest(r *http.Request) (pointRequest, error) {
	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return pointRequest{}, err
	}
	if req.Leap == 0 {
		req.Leap = 1
	}
	return req, nil
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.loadEngine(w, r)
	if !ok {
		return
	}
	req, err := decodePointRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	at, err := engine.ParseInstant(req.At)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	span := s.startWalkSpan(r.Context(), "httpapi.next", req.Leap)
	defer span.End()
	s.recordQuery(r, r.PathValue("name"), "next", req.Leap)

	next, err := eng.Next(at, req.Leap, req.PassNow)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{At: next.String()})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.loadEngine(w, r)
	if !ok {
		return
	}
	req, err := decodePointRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	at, err := engine.ParseInstant(req.At)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	span := s.startWalkSpan(r.Context(), "httpapi.prev", req.Leap)
	defer span.End()
	s.recordQuery(r, r.PathValue("name"), "prev", req.Leap)

	prev, err := eng.Prev(at, req.Leap, req.PassNow)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{At: prev.String()})
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	eng, ok := s.loadEngine(w, r)
	if !ok {
		return
	}
	at, err := engine.ParseInstant(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, containsResponse{Contains: eng.Contains(at)})
}

func (s *Server) handleNextStart(w http.ResponseWriter, r *http.Request) {
	s.handlePeriodPoint(w, r, "next-start", (*engine.Period).NextStart)
}

func (s *Server) handleNextEnd(w http.ResponseWriter, r *http.Request) {
	s.handlePeriodPoint(w, r, "next-end", (*engine.Period).NextEnd)
}

func (s *Server) handlePrevStart(w http.ResponseWriter, r *http.Request) {
	s.handlePeriodPoint(w, r, "prev-start", (*engine.Period).PrevStart)
}

func (s *Server) handlePrevEnd(w http.ResponseWriter, r *http.Request) {
	s.handlePeriodPoint(w, r, "prev-end", (*engine.Period).PrevEnd)
}

func (s *Server) handlePeriodPoint(w http.ResponseWriter, r *http.Request, op string, fn func(*engine.Period, engine.Instant, int, bool) (engine.Instant, error)) {
	period, ok := s.loadPeriod(w, r)
	if !ok {
		return
	}
	req, err := decodePointRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	at, err := engine.ParseInstant(req.At)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	span := s.startWalkSpan(r.Context(), "httpapi.period_walk", req.Leap)
	defer span.End()
	s.recordQuery(r, r.PathValue("name"), op, req.Leap)

	result, err := fn(period, at, req.Leap, req.PassNow)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{At: result.String()})
}

func (s *Server) handleCovers(w http.ResponseWriter, r *http.Request) {
	period, ok := s.loadPeriod(w, r)
	if !ok {
		return
	}
	at, err := engine.ParseInstant(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	covers, err := period.Covers(at)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, containsResponse{Contains: covers})
}
