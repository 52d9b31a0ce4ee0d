package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/gywan/gywan-site/internal/config"
)

// S3 stores files in a bucket and hands out presigned download URLs.
type S3 struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

// NewS3 loads the default AWS configuration for the configured region.
func NewS3(ctx context.Context, cfg config.Storage) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewS3FromClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.PresignTTL), nil
}

// NewS3FromClient wraps an existing client.
func NewS3FromClient(client *s3.Client, bucket string, ttl time.Duration) *S3 {
	return &S3{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		ttl:     ttl,
	}
}

// Put uploads body under key. Non seekable bodies are buffered in memory.
func (s *S3) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}

	if _, ok := body.(io.ReadSeeker); !ok {
		buf, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		body = bytes.NewReader(buf)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(k),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", k, err)
	}

	return nil
}

// URL returns a presigned GET URL valid for the configured TTL.
func (s *S3) URL(ctx context.Context, key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", k, err)
	}

	return req.URL, nil
}
