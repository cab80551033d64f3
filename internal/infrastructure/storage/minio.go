package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"beacon-port/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrStorageDisabled = errors.New("object storage not configured")

// Minio holds profile photos in an S3-compatible bucket. Like the cache,
// storage is optional infrastructure: an unconfigured endpoint yields a
// client whose operations fail with ErrStorageDisabled instead of a boot
// failure.
type Minio struct {
	client *minio.Client
	bucket string
	logger *log.Logger
}

func NewMinio(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*Minio, error) {
	if logger == nil {
		logger = log.Default()
	}

	if cfg.Endpoint == "" || cfg.Bucket == "" {
		logger.Printf("[Storage] endpoint not configured, photo uploads disabled")
		return &Minio{client: nil, bucket: cfg.Bucket, logger: logger}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage bucket create: %w", err)
		}
		logger.Printf("[Storage] created bucket | bucket=%s", cfg.Bucket)
	}

	return &Minio{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (m *Minio) isDisabled() bool {
	return m == nil || m.client == nil
}

func (m *Minio) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.isDisabled() {
		return ErrStorageDisabled
	}
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("storage put %s: %w", key, err)
	}
	return nil
}

func (m *Minio) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if m.isDisabled() {
		return "", ErrStorageDisabled
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, 15*time.Minute, url.Values{})
	if err != nil {
		return "", fmt.Errorf("storage presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (m *Minio) Delete(ctx context.Context, key string) error {
	if m.isDisabled() {
		return ErrStorageDisabled
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage remove %s: %w", key, err)
	}
	return nil
}
