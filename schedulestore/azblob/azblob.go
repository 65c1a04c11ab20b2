// Package azblob adapts schedulestore.Store onto an Azure blob container,
// threading the caller's context.Context through every storage call.
package azblob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-storage-blob-go/azblob"

	"github.com/caldros/cronweave/schedulestore"
)

var _ schedulestore.Store = &Store{}
var _ schedulestore.Lister = &Store{}

// Store is an Azure-blob-backed schedulestore.Store.
type Store struct {
	prefix       string
	containerURL azblob.ContainerURL
}

// New builds a Store in containerName of the storage account accountName,
// keying blobs under prefix.
func New(prefix, accountName, containerName, accountKey string) (*Store, error) {
	if len(prefix) == 0 {
		return nil, fmt.Errorf("missing prefix")
	}
	if len(accountName) == 0 {
		return nil, fmt.Errorf("missing account name")
	}
	if len(containerName) == 0 {
		return nil, fmt.Errorf("missing container name")
	}
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}
	p := azblob.NewPipeline(credential, azblob.PipelineOptions{})
	URL, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net/%s", accountName, containerName))
	if err != nil {
		return nil, err
	}
	containerURL := azblob.NewContainerURL(*URL, p)
	return &Store{prefix: prefix, containerURL: containerURL}, nil
}

func (s *Store) blobURL(name string) azblob.BlockBlobURL {
	return s.containerURL.NewBlockBlobURL(fmt.Sprintf("%s/%s", s.prefix, name))
}

// Get reads the blob stored for name.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := schedulestore.ValidName(name); err != nil {
		return nil, err
	}
	blobURL := s.blobURL(name)
	_, err := blobURL.GetProperties(ctx, azblob.BlobAccessConditions{}, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		if serr, ok := err.(azblob.StorageError); ok && serr.Response().StatusCode == 404 {
			return nil, schedulestore.ErrNotFound
		}
		return nil, fmt.Errorf("schedulestore azblob: get %s: %w", name, err)
	}

	downloadResponse, err := blobURL.Download(ctx, 0, azblob.CountToEnd, azblob.BlobAccessConditions{}, false, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		return nil, fmt.Errorf("schedulestore azblob: download %s: %w", name, err)
	}
	bodyStream := downloadResponse.Body(azblob.RetryReaderOptions{MaxRetryRequests: 3})
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(bodyStream); err != nil {
		return nil, fmt.Errorf("schedulestore azblob: read %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Put writes body as the blob for name.
func (s *Store) Put(ctx context.Context, name string, body []byte) error {
	if err := schedulestore.ValidName(name); err != nil {
		return err
	}
	_, err := azblob.UploadStreamToBlockBlob(ctx, bytes.NewReader(body), s.blobURL(name), azblob.UploadStreamToBlockBlobOptions{})
	if err != nil {
		return fmt.Errorf("schedulestore azblob: put %s: %w", name, err)
	}
	return nil
}

// List returns the names of every schedule blob stored under the
// configured prefix, paginating through ListBlobsFlatSegment.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	marker := azblob.Marker{}
	for marker.NotDone() {
		resp, err := s.containerURL.ListBlobsFlatSegment(ctx, marker, azblob.ListBlobsSegmentOptions{
			Prefix: s.prefix + "/",
		})
		if err != nil {
			return nil, fmt.Errorf("schedulestore azblob: list: %w", err)
		}
		for _, blob := range resp.Segment.BlobItems {
			names = append(names, strings.TrimPrefix(blob.Name, s.prefix+"/"))
		}
		marker = resp.NextMarker
	}
	return names, nil
}

// Delete removes the blob stored for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := schedulestore.ValidName(name); err != nil {
		return err
	}
	_, err := s.blobURL(name).Delete(ctx, azblob.DeleteSnapshotsOptionNone, azblob.BlobAccessConditions{})
	if err != nil {
		if serr, ok := err.(azblob.StorageError); ok && serr.Response().StatusCode == 404 {
			return schedulestore.ErrNotFound
		}
		return fmt.Errorf("schedulestore azblob: delete %s: %w", name, err)
	}
	return nil
}
