// Copyright © 2021 Luther Systems, Ltd. All right reserved.

package auditlog

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures an Archiver.
type Option func(*config)

type config struct {
	logBase      *logrus.Entry
	ignoredPaths map[string]bool
	timeout      time.Duration
	traceHeader  string
}

// WithLogBase sets a base logrus Entry used for archiver error logging.
func WithLogBase(logBase *logrus.Entry) Option {
	return func(cfg *config) {
		cfg.logBase = logBase
	}
}

// WithIgnoredPath excludes a URL path from archiving. May be called more
// than once.
func WithIgnoredPath(path string) Option {
	return func(cfg *config) {
		if cfg.ignoredPaths == nil {
			cfg.ignoredPaths = make(map[string]bool, 1)
		}
		cfg.ignoredPaths[path] = true
	}
}

// WithTimeout sets the timeout for archival goroutines. Defaults to 1 minute.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = timeout
	}
}

// WithTraceHeader overrides the default request-id header.
func WithTraceHeader(header string) Option {
	return func(cfg *config) {
		cfg.traceHeader = header
	}
}
