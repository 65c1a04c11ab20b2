// Copyright © 2021 Luther Systems, Ltd. All right reserved.

package mailer

import (
	"context"
	"os"
	"testing"
	"time"
)

const (
	reqTimeout          = 30 * time.Second
	defaultSuccessEmail = "success@simulator.amazonses.com"
	sesRegion           = "eu-west-1"
	emailSender         = "noreply@cronweave.example.com"
	subjectText         = `cronweave: upcoming schedule fire`
	htmlBodyText        = `<p>nightly-report (0 0 * 9 30 0, mode M)</p>
<p>next: 2026-09-01 09:30:00</p>
`
)

// TestSend makes a call to AWS SES to send an email.
// IMPORTANT: The env variable `MAILER_SES_TESTS` must be set in order
// to activate this test. This guard is to prevent the automated tests
// failing in CI, or spamming when running tests.
// NOTE: The env variable `MAILER_SES_RECIPIENT` can also be set to
// send to a specific email address
func TestSend(t *testing.T) {
	if os.Getenv("MAILER_SES_TESTS") == "" {
		t.Skip("Skipping test: $MAILER_SES_TESTS not set")
	}
	recipient := defaultSuccessEmail
	if os.Getenv("MAILER_SES_RECIPIENT") != "" {
		recipient = os.Getenv("MAILER_SES_RECIPIENT")
	}
	mailer, err := NewSES(sesRegion, emailSender)
	if err != nil {
		t.Fatalf("init mailer: %v", err)
	}
	ctx, done := context.WithTimeout(context.Background(), reqTimeout)
	defer done()
	err = mailer.Send(ctx, htmlBodyText, recipient, subjectText)
	if err != nil {
		t.Fatalf("send mailer: %v", err)
	}
	t.Logf("Sent email to: %s", recipient)
}
