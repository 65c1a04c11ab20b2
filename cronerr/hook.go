package cronerr

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

// Hook is a logrus.Hook that counts log statements by level, by (level,
// message), and, when the entry carries an "error" field of one of this
// package's kinds, by kind - so operators can alert on a spike of
// Inadequate results without scraping log text.
type Hook struct {
	levels   *prometheus.CounterVec
	messages *prometheus.CounterVec
	kinds    *prometheus.CounterVec
}

// NewHook registers the prometheus counters backing Hook.
func NewHook() *Hook {
	return &Hook{
		levels: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronweave_log_statements_total",
				Help: "Number of log statements, differentiated by log level.",
			},
			[]string{"level"},
		),
		messages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronweave_log_statements_message_total",
				Help: "Number of log statements, differentiated by log level and message.",
			},
			[]string{"level", "message"},
		),
		kinds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cronweave_errors_total",
				Help: "Number of logged cronerr errors, differentiated by kind.",
			},
			[]string{"kind"},
		),
	}
}

// Levels reports that the hook fires for every log level.
func (h *Hook) Levels() []log.Level {
	return log.AllLevels
}

// Fire updates the prometheus counters for e.
func (h *Hook) Fire(e *log.Entry) error {
	h.levels.WithLabelValues(e.Level.String()).Inc()
	h.messages.WithLabelValues(e.Level.String(), e.Message).Inc()
	if err, ok := e.Data[log.ErrorKey].(error); ok {
		if kind := Kind(err); kind != "" {
			h.kinds.WithLabelValues(kind).Inc()
		}
	}
	return nil
}

// Kind reports the taxonomy name of err, or "" if err is not one of this
// package's types.
func Kind(err error) string {
	switch err.(type) {
	case *Inadequate:
		return "inadequate"
	case *NoMatch:
		return "no_match"
	case *ModeMismatch:
		return "mode_mismatch"
	case *Indecisive:
		return "indecisive"
	default:
		return ""
	}
}
