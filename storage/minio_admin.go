package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// BucketStats summarizes a bucket listing.
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
}

// ObjectInfo describes a single stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ListObjects lists the bucket's objects under prefix along with
// aggregate statistics. Used by the bucket CLI command.
func (c *Client) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, *BucketStats, error) {
	stats := &BucketStats{}
	var objects []ObjectInfo

	objectCh := c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}

		stats.TotalObjects++
		stats.TotalSize += object.Size
		if object.LastModified.After(stats.LastModified) {
			stats.LastModified = object.LastModified
		}

		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
		})
	}

	return objects, stats, nil
}

// PrintBucketStatus prints a bucket status report to stdout.
func (c *Client) PrintBucketStatus(ctx context.Context, prefix string) error {
	objects, stats, err := c.ListObjects(ctx, prefix)
	if err != nil {
		return err
	}

	fmt.Printf("Bucket: %s\n", c.bucket)
	if prefix != "" {
		fmt.Printf("Prefix: %s\n", prefix)
	}
	fmt.Printf("Objects: %d\n", stats.TotalObjects)
	fmt.Printf("Total size: %s\n", formatSize(stats.TotalSize))
	if !stats.LastModified.IsZero() {
		fmt.Printf("Last modified: %s\n", stats.LastModified.Format(time.RFC3339))
	}
	for _, obj := range objects {
		fmt.Printf("  %s (%s)\n", obj.Key, formatSize(obj.Size))
	}
	return nil
}

// formatSize renders a byte count in a human-readable unit.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
