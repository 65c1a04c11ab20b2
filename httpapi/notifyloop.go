package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/caldros/cronweave/engine"
	"github.com/caldros/cronweave/schedulestore"
)

// lookaheadSubject is the email subject for a schedule entering its
// lookahead window.
const lookaheadSubject = "cronweave: upcoming schedule fire"

// RunNotifyLoop polls every schedule in lister on interval and emails
// recipient whenever a schedule's next fire time falls within lookahead of
// now. It blocks until ctx is canceled. A Server with no mailer configured
// returns immediately, since there is nothing to send notifications with.
func (s *Server) RunNotifyLoop(ctx context.Context, lister schedulestore.Lister, recipient string, interval, lookahead time.Duration) error {
	if s.mailer == nil {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.notifyPass(ctx, lister, recipient, lookahead); err != nil {
				s.log.WithError(err).Warn("notify loop pass failed")
			}
		}
	}
}

func (s *Server) notifyPass(ctx context.Context, lister schedulestore.Lister, recipient string, lookahead time.Duration) error {
	schedules, err := schedulestore.All(ctx, lister, s.store)
	if err != nil {
		return fmt.Errorf("httpapi: notify pass: %w", err)
	}
	now := time.Now().UTC()
	nowPoint := timeToInstant(now)
	horizon := now.Add(lookahead)
	for _, sch := range schedules {
		next, ok := s.upcomingFire(sch, nowPoint)
		if !ok {
			continue
		}
		nextTime, err := time.Parse(instantLayout, next.String())
		if err != nil || nextTime.Before(now) || nextTime.After(horizon) {
			continue
		}
		body, err := s.renderSummary(sch, []string{next.String()})
		if err != nil {
			s.log.WithError(err).WithField("schedule", sch.Name).Warn("render notify summary failed")
			continue
		}
		if err := s.mailer.Send(ctx, body, recipient, lookaheadSubject); err != nil {
			s.log.WithError(err).WithField("schedule", sch.Name).Warn("send notify email failed")
		}
	}
	return nil
}

func (s *Server) upcomingFire(sch schedulestore.Schedule, now engine.Instant) (engine.Instant, bool) {
	if sch.IsPeriod {
		period, err := buildPeriod(sch)
		if err != nil {
			return engine.Instant{}, false
		}
		next, err := period.NextStart(now, 1, true)
		if err != nil {
			return engine.Instant{}, false
		}
		return next, true
	}
	eng, err := buildEngine(sch)
	if err != nil {
		return engine.Instant{}, false
	}
	next, err := eng.Next(now, 1, true)
	if err != nil {
		return engine.Instant{}, false
	}
	return next, true
}
