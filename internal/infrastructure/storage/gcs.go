package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	gcs "cloud.google.com/go/storage"

	"ArticleSummarizer/internal/domain"
	"ArticleSummarizer/internal/ports"
)

type objectWriterFunc func(ctx context.Context, bucket, object string) io.WriteCloser

// GCSPublisher uploads summaries to a Cloud Storage bucket.
type GCSPublisher struct {
	bucket    string
	prefix    string
	newWriter objectWriterFunc
	close     func() error
}

var _ ports.Publisher = (*GCSPublisher)(nil)

// NewGCSPublisher authenticates with application default credentials.
func NewGCSPublisher(ctx context.Context, bucket, prefix string) (*GCSPublisher, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	newWriter := func(ctx context.Context, bucket, object string) io.WriteCloser {
		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = "text/plain; charset=utf-8"
		return w
	}
	return &GCSPublisher{bucket: bucket, prefix: prefix, newWriter: newWriter, close: client.Close}, nil
}

// Name identifies the publisher in logs.
func (p *GCSPublisher) Name() string {
	return "gcs"
}

// Publish writes the summary text under prefix + file name.
func (p *GCSPublisher) Publish(ctx context.Context, summary domain.SavedSummary) error {
	object := objectKey(p.prefix, summary.Path)
	w := p.newWriter(ctx, p.bucket, object)

	if _, err := io.WriteString(w, summary.Text); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing object writer %s: %w", object, err)
	}
	return nil
}

// Close releases the storage client.
func (p *GCSPublisher) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

func objectKey(prefix, path string) string {
	return prefix + filepath.Base(path)
}
