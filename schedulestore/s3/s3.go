// Package s3 adapts schedulestore.Store onto an S3 bucket, upgraded to the
// aws-sdk-go-v2 client, with context threaded through every call.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/caldros/cronweave/schedulestore"
)

var _ schedulestore.Store = &Store{}
var _ schedulestore.Lister = &Store{}

// Store is an S3-backed schedulestore.Store.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds a Store for bucket in region, keying objects under prefix.
func New(ctx context.Context, region, bucket, prefix string) (*Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &Store{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s/%s", s.prefix, name)
}

// Put writes body as the object for name.
func (s *Store) Put(ctx context.Context, name string, body []byte) error {
	if err := schedulestore.ValidName(name); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    stringPtr(s.key(name)),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("schedulestore s3: put %s: %w", name, err)
	}
	return nil
}

// Get reads the object stored for name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := schedulestore.ValidName(name); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    stringPtr(s.key(name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, schedulestore.ErrNotFound
		}
		return nil, fmt.Errorf("schedulestore s3: get %s: %w", name, err)
	}
	defer out.Body.Close()
	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("schedulestore s3: read %s: %w", name, err)
	}
	return body, nil
}

// Delete removes the object stored for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := schedulestore.ValidName(name); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    stringPtr(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("schedulestore s3: delete %s: %w", name, err)
	}
	return nil
}

// List returns the names of every schedule stored under the configured
// prefix, paginating through ListObjectsV2 until the bucket is exhausted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
		Prefix: stringPtr(s.prefix + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("schedulestore s3: list: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			names = append(names, strings.TrimPrefix(*obj.Key, s.prefix+"/"))
		}
	}
	return names, nil
}

func stringPtr(s string) *string { return &s }
