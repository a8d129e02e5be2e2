package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client wraps the MinIO client for a single bucket.
type Client struct {
	mc     *minio.Client
	bucket string
}

// NewClient connects to MinIO and makes sure the configured bucket exists.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(checkCtx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(checkCtx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Bucket created", logger.String("bucket", cfg.MinioBucket))
	}

	logger.Info("MinIO client initialized",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket))
	return &Client{mc: mc, bucket: cfg.MinioBucket}, nil
}

// Bucket returns the bucket name this client operates on.
func (c *Client) Bucket() string {
	return c.bucket
}

// UploadFile uploads a local file to the bucket under objectName. The
// content type is inferred from the object name so that audio streams
// and lyric text are served with sensible headers.
func (c *Client) UploadFile(ctx context.Context, objectName, filePath string) error {
	info, err := c.mc.FPutObject(ctx, c.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: ContentTypeForObject(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	logger.Info("Object uploaded",
		logger.String("object", objectName),
		logger.Int64("size", info.Size))
	return nil
}

// RemoveObject deletes an object from the bucket.
func (c *Client) RemoveObject(ctx context.Context, objectName string) error {
	if err := c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", objectName, err)
	}
	return nil
}

// PresignedGetURL generates a time-limited signed GET URL for an object.
func (c *Client) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}
	return u.String(), nil
}

// ContentTypeForObject infers the content type from an object name.
func ContentTypeForObject(name string) string {
	switch {
	case strings.HasSuffix(name, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(name, ".lrc"), strings.HasSuffix(name, ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
