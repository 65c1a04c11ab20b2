// Command cronweave is the calendar-aware cron recurrence engine's CLI:
// one-off next/prev/contains queries for scripting, and a serve subcommand
// that brings up the full httpapi.Server.
//
// No CLI-argument-parsing library appears anywhere in the examples pack, so
// this command is built on the standard library's flag package - the one
// ambient concern this module carries on the standard library. See
// DESIGN.md for the justification.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caldros/cronweave/auditlog"
	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/cronsyntax"
	"github.com/caldros/cronweave/engine"
	"github.com/caldros/cronweave/httpapi"
	"github.com/caldros/cronweave/logmon"
	"github.com/caldros/cronweave/mailer"
	"github.com/caldros/cronweave/opttrace"
	"github.com/caldros/cronweave/reqlog"
	"github.com/caldros/cronweave/schedulestore/s3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "next":
		err = runPoint(os.Args[2:], pointNext)
	case "prev":
		err = runPoint(os.Args[2:], pointPrev)
	case "contains":
		err = runContains(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "cronweave:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cronweave <next|prev|contains|serve> [flags]")
}

type pointDirection int

const (
	pointNext pointDirection = iota
	pointPrev
)

func buildEngineFromFlags(cron, mode string) (*engine.Engine, error) {
	calMode, err := calendar.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	calRecipes, clockRecipes, err := cronsyntax.ParsePoint(cron, calMode)
	if err != nil {
		return nil, err
	}
	hour, err := clockRecipes[0].Resolve(0, 23)
	if err != nil {
		return nil, err
	}
	minute, err := clockRecipes[1].Resolve(0, 59)
	if err != nil {
		return nil, err
	}
	second, err := clockRecipes[2].Resolve(0, 59)
	if err != nil {
		return nil, err
	}
	return engine.New(calMode, calRecipes, hour, minute, second)
}

func runPoint(args []string, dir pointDirection) error {
	fs := flag.NewFlagSet("point", flag.ExitOnError)
	cron := fs.String("cron", "", "cron string, e.g. \"* * * 9 0\"")
	mode := fs.String("mode", "M", "calendar mode: M, D, W, or MW")
	at := fs.String("at", "", "reference instant, \"2006-01-02 15:04:05\"")
	leap := fs.Int("leap", 1, "number of admissible instants to leap over")
	passNow := fs.Bool("pass-now", true, "step past the reference instant even when it matches")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, err := buildEngineFromFlags(*cron, *mode)
	if err != nil {
		return err
	}
	now, err := engine.ParseInstant(*at)
	if err != nil {
		return fmt.Errorf("parse -at: %w", err)
	}

	var result engine.Instant
	if dir == pointNext {
		result, err = eng.Next(now, *leap, *passNow)
	} else {
		result, err = eng.Prev(now, *leap, *passNow)
	}
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func runContains(args []string) error {
	fs := flag.NewFlagSet("contains", flag.ExitOnError)
	cron := fs.String("cron", "", "cron string, e.g. \"* * * 9 0\"")
	mode := fs.String("mode", "M", "calendar mode: M, D, W, or MW")
	at := fs.String("at", "", "instant to test, \"2006-01-02 15:04:05\"")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, err := buildEngineFromFlags(*cron, *mode)
	if err != nil {
		return err
	}
	instant, err := engine.ParseInstant(*at)
	if err != nil {
		return fmt.Errorf("parse -at: %w", err)
	}
	fmt.Println(eng.Contains(instant))
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "address to listen on")
	s3Bucket := fs.String("s3-bucket", "", "S3 bucket backing the schedule store (required)")
	s3Region := fs.String("s3-region", "us-east-1", "AWS region for the schedule store bucket")
	s3Prefix := fs.String("s3-prefix", "cronweave/schedules", "S3 key prefix for stored schedules")
	otlpEndpoint := fs.String("otlp-endpoint", "", "OTLP trace collector endpoint, empty disables tracing")
	archiveBucket := fs.String("audit-bucket", "", "S3 bucket for request archiving, empty disables archiving")
	archivePrefix := fs.String("audit-prefix", "cronweave/audit", "S3 key prefix for archived requests")
	sesRegion := fs.String("ses-region", "us-east-1", "AWS region for outbound notification email")
	sesSender := fs.String("ses-sender", "", "sender address for notification email, empty disables notifications")
	notifyRecipient := fs.String("notify-to", "", "recipient address for upcoming-fire notifications")
	notifyInterval := fs.Duration("notify-interval", 5*time.Minute, "how often to scan schedules for upcoming fires")
	notifyLookahead := fs.Duration("notify-lookahead", time.Hour, "how far ahead to notify before a schedule fires")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *s3Bucket == "" {
		return fmt.Errorf("-s3-bucket is required")
	}

	log := logrus.New()
	log.AddHook(logmon.NewPrometheusHook())
	base := logrus.NewEntry(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := s3.New(ctx, *s3Region, *s3Bucket, *s3Prefix)
	if err != nil {
		return fmt.Errorf("schedule store: %w", err)
	}

	var tracer *opttrace.Tracer
	if *otlpEndpoint != "" {
		tracer, err = opttrace.New(ctx, "cronweave", opttrace.WithOTLPExporter(*otlpEndpoint))
		if err != nil {
			return fmt.Errorf("tracer: %w", err)
		}
		tracer.SetGlobalTracer()
		defer tracer.Shutdown(context.Background())
	}

	reqLogger := reqlog.RequestLogger(base, reqlog.SimpleTimer(), reqlog.RealTime(), "")

	var opts []httpapi.Option
	if *archiveBucket != "" {
		archiver, err := auditlog.NewS3Archiver(ctx, *s3Region, *archiveBucket, *archivePrefix)
		if err != nil {
			return fmt.Errorf("auditlog archiver: %w", err)
		}
		opts = append(opts, httpapi.WithArchiver(archiver))
	}
	if *sesSender != "" {
		m, err := mailer.NewSES(*sesRegion, *sesSender)
		if err != nil {
			return fmt.Errorf("mailer: %w", err)
		}
		opts = append(opts, httpapi.WithMailer(m))
	}

	server := httpapi.NewServer(store, base, reqLogger, tracer, opts...)

	if *notifyRecipient != "" {
		go func() {
			if err := server.RunNotifyLoop(ctx, store, *notifyRecipient, *notifyInterval, *notifyLookahead); err != nil && ctx.Err() == nil {
				base.WithError(err).Error("notify loop exited")
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.Router(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	base.WithField("addr", *addr).Info("cronweave serving")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
