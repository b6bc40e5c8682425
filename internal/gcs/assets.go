// Package gcs stores generated creative assets in a Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// Store wraps a Cloud Storage client scoped to the asset bucket
type Store struct {
	client *storage.Client
	bucket string
}

// Asset describes an object in the asset bucket
type Asset struct {
	Name    string
	Size    int64
	Updated time.Time
}

// NewStore creates an asset store for the given bucket
func NewStore(ctx context.Context, bucket string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("asset bucket must be set via config or GCS_BUCKET_NAME")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Close releases the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

// Bucket returns the bucket name the store writes to
func (s *Store) Bucket() string {
	return s.bucket
}

// URI returns the gs:// URI for an object in the asset bucket
func (s *Store) URI(object string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, object)
}

// ImageObject returns a timestamped object name for a generated image
func ImageObject(now time.Time) string {
	return fmt.Sprintf("images/%s.png", now.Format("2006-01-02_15-04-05"))
}

// VideoObject returns a timestamped object name for a generated clip
func VideoObject(now time.Time) string {
	return fmt.Sprintf("videos/%s", now.Format("2006-01-02_15-04-05"))
}

// FinalObject returns the object name for a merged advertisement.
// The "final" keyword is part of the contract with the agent instructions.
func FinalObject(now time.Time) string {
	return fmt.Sprintf("videos/final_%s.mp4", now.Format("2006-01-02_15-04-05"))
}

// ParseURI splits a gs:// URI into bucket and object
func ParseURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URI: %q", uri)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed gs:// URI: %q", uri)
	}
	return bucket, object, nil
}

// Upload writes data to an object and returns its gs:// URI
func (s *Store) Upload(ctx context.Context, object, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", object, err)
	}
	return s.URI(object), nil
}

// UploadFile streams a local file to an object and returns its gs:// URI
func (s *Store) UploadFile(ctx context.Context, object, contentType, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", object, err)
	}
	return s.URI(object), nil
}

// Download fetches a gs:// URI to a local path. The URI may point at any
// bucket, not only the store's own; merge inputs arrive as full URIs.
func (s *Store) Download(ctx context.Context, uri, localPath string) error {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return err
	}

	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", uri, err)
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to download %s: %w", uri, err)
	}
	return nil
}

// List returns assets under a prefix, newest-first ordering is left to callers
func (s *Store) List(ctx context.Context, prefix string) ([]Asset, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var assets []Asset
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		assets = append(assets, Asset{
			Name:    attrs.Name,
			Size:    attrs.Size,
			Updated: attrs.Updated,
		})
	}
	return assets, nil
}
