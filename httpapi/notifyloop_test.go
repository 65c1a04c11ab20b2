package httpapi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	email string
}

func (f *fakeMailer) Send(_ context.Context, content, email, subject string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	f.email = email
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestNotifyPassSendsWithinLookahead(t *testing.T) {
	log, _ := test.NewNullLogger()
	store := newMemStore()
	mailer := &fakeMailer{}
	s := NewServer(store, logrus.NewEntry(log), nil, nil, WithEmailSender(mailer))

	putSchedule(t, s, "soon", scheduleRequest{Cron: "* * * 9 0", Mode: "M"})

	require.NoError(t, s.notifyPass(context.Background(), store, "ops@example.com", 1000*time.Hour))
	require.Equal(t, 1, mailer.count())
	require.Equal(t, "ops@example.com", mailer.email)
}

func TestNotifyPassSkipsOutsideLookahead(t *testing.T) {
	log, _ := test.NewNullLogger()
	store := newMemStore()
	mailer := &fakeMailer{}
	s := NewServer(store, logrus.NewEntry(log), nil, nil, WithEmailSender(mailer))

	putSchedule(t, s, "far", scheduleRequest{Cron: "* * * 9 0", Mode: "M"})

	require.NoError(t, s.notifyPass(context.Background(), store, "ops@example.com", time.Nanosecond))
	require.Equal(t, 0, mailer.count())
}

func TestRunNotifyLoopNoMailerReturnsImmediately(t *testing.T) {
	log, _ := test.NewNullLogger()
	store := newMemStore()
	s := NewServer(store, logrus.NewEntry(log), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.RunNotifyLoop(ctx, store, "ops@example.com", time.Millisecond, time.Hour)
	require.NoError(t, err)
}
