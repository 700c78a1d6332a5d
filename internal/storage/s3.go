// Package storage issues presigned S3 URLs for trip media. Files go straight
// from the client to the bucket; this process only signs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Config holds S3 client configuration.
type S3Config struct {
	Bucket string
	Region string

	// Endpoint overrides the AWS endpoint, e.g. for MinIO. Path-style
	// addressing is used whenever it is set.
	Endpoint string

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// S3 signs PUT requests against one bucket.
type S3 struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3 creates a presigning client for cfg.Bucket.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage.NewS3: bucket is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
		logger.Info("S3 client using static credentials", zap.String("bucket", cfg.Bucket))
	} else {
		logger.Info("S3 client using default credential chain", zap.String("bucket", cfg.Bucket))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewS3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

// PresignPut returns a URL that accepts one PUT of key with the given
// content type until ttl elapses.
func (s *S3) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("storage.S3.PresignPut: %w", err)
	}
	return req.URL, nil
}
