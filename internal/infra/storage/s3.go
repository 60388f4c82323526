package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("storage: object store not configured")

// ObjectStore is where dashboard exports land.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // MinIO or LocalStack; empty for AWS
	AccessKey string
	SecretKey string
}

type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

var _ ObjectStore = (*S3Store)(nil)

func NewS3Store(cfg S3Config) *S3Store {
	opts := s3.Options{
		Region: cfg.Region,
	}

	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	client := s3.New(opts)

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// URL returns a presigned GET link valid for ttl.
func (s *S3Store) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}
