package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ArticleSummarizer/internal/domain"
	"ArticleSummarizer/internal/ports"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads summaries to an S3 (or S3-compatible) bucket.
type S3Publisher struct {
	client putObjectAPI
	bucket string
	prefix string
}

var _ ports.Publisher = (*S3Publisher)(nil)

// NewS3Publisher uses the default AWS credential chain; region may be empty.
func NewS3Publisher(ctx context.Context, bucket, region, prefix string) (*S3Publisher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Publisher{client: s3.NewFromConfig(awsCfg), bucket: bucket, prefix: prefix}, nil
}

// Name identifies the publisher in logs.
func (p *S3Publisher) Name() string {
	return "s3"
}

// Publish puts the summary text under prefix + file name.
func (p *S3Publisher) Publish(ctx context.Context, summary domain.SavedSummary) error {
	key := objectKey(p.prefix, summary.Path)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(summary.Text),
		ContentType: aws.String("text/plain; charset=utf-8"),
		Metadata: map[string]string{
			"run-id":     summary.RunID,
			"source-url": summary.URL,
		},
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
