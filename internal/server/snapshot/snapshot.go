// Package snapshot exports the backing list to S3-compatible object storage.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Uploader is the part of *s3.Client the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Source provides the prompts to export.
type Source interface {
	ListAll(ctx context.Context) ([]*models.Prompt, error)
}

// S3Settings describes the target bucket and its endpoint.
type S3Settings struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// NewS3Client builds a path-style client for an S3-compatible endpoint
// such as MinIO.
func NewS3Client(ctx context.Context, st S3Settings) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(st.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(st.User, st.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(st.BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

type Exporter struct {
	source   Source
	uploader Uploader
	bucket   string
	logger   logging.Logger
	now      func() time.Time
}

func NewExporter(source Source, uploader Uploader, bucket string, l logging.Logger) *Exporter {
	return &Exporter{
		source:   source,
		uploader: uploader,
		bucket:   bucket,
		logger:   l.With("module", "snapshot"),
		now:      time.Now,
	}
}

// Key returns a fresh object key of the form
// snapshots/<yyyy>/<mm>/<dd>/<uuid>.json.
func Key(d time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%s.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Export uploads every prompt as one JSON array and returns the object key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	prompts, err := e.source.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("read prompts: %w", err)
	}
	if prompts == nil {
		prompts = []*models.Prompt{}
	}

	body, err := json.Marshal(prompts)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := Key(e.now().UTC())
	_, err = e.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot %s: %w", key, err)
	}

	e.logger.Info(ctx, "snapshot exported", "bucket", e.bucket, "key", key, "prompts", len(prompts))
	return key, nil
}
