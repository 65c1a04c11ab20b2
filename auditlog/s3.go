// Copyright © 2021 Luther Systems, Ltd. All right reserved.

package auditlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/sirupsen/logrus"

	"github.com/caldros/cronweave/midware"
)

type s3Backend struct {
	client  *s3.Client
	bucket  string
	prefix  string
	timeout time.Duration
	wg      sync.WaitGroup
	log     func(string) *logrus.Entry
}

func (b *s3Backend) Write(ctx context.Context, reqID string, content []byte) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, done := context.WithTimeout(ctx, b.timeout)
		defer done()
		input := &s3.PutObjectInput{
			Body:   bytes.NewReader(content),
			Bucket: aws.String(b.bucket),
			Key:    aws.String(fmt.Sprintf("%s/%s", b.prefix, reqID)),
		}
		if _, err := b.client.PutObject(ctx, input); err != nil {
			b.log(reqID).WithError(err).Error("auditlog archiver failed to write request")
		}
	}()
}

func (b *s3Backend) Done() {
	b.wg.Wait()
}

// NewS3Archiver returns a midware.Middleware that archives schedule-API
// requests to an S3 bucket. Request bodies are copied, then written to S3
// in a separate goroutine. Requests are assumed to carry a trace header
// (request id), implemented by midware.TraceHeaders; it is appended to
// prefix to form the object key.
func NewS3Archiver(ctx context.Context, region, bucket, prefix string, opts ...Option) (midware.Middleware, error) {
	if prefix == "" {
		return nil, errors.New("NewS3Archiver: requires non-empty prefix")
	}
	cfg := &config{
		timeout:     defaultTimeout,
		traceHeader: midware.DefaultTraceHeader,
		logBase:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	a := &archiver{
		logBase:      cfg.logBase,
		ignoredPaths: cfg.ignoredPaths,
		traceHeader:  cfg.traceHeader,
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	backend := &s3Backend{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		prefix:  prefix,
		timeout: cfg.timeout,
		log:     a.logReqID,
	}
	a.backend = backend
	return a, nil
}
