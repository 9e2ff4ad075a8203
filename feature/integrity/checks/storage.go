package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"farm-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the snapshot bucket.
type StorageReport struct {
	Bucket        string `json:"bucket"`
	BucketExists  bool   `json:"bucket_exists"`
	Prefix        string `json:"prefix"`
	PrefixExists  bool   `json:"prefix_exists"`
	SnapshotCount int    `json:"snapshot_count"`
	Status        string `json:"status"` // "ok", "missing"
}

// CheckStorage verifies that the bucket and the snapshot prefix exist.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	prefix = folder(prefix)
	report := &StorageReport{Bucket: bucket, Prefix: prefix, Status: "missing"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		report.PrefixExists = true
		if strings.HasSuffix(obj.Key, ".json") {
			report.SnapshotCount++
		}
	}

	if report.PrefixExists {
		report.Status = "ok"
	}
	return report, nil
}

// FixStorage creates the bucket and the snapshot folder marker when missing.
func FixStorage(ctx context.Context, client storage.Client, report *StorageReport, region string, logger *zap.Logger) error {
	if !report.BucketExists {
		if err := client.MakeBucket(ctx, report.Bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			logger.Error("Failed to create bucket", zap.String("bucket", report.Bucket), zap.Error(err))
			return err
		}
		logger.Info("Created missing bucket", zap.String("bucket", report.Bucket))
	}

	if !report.PrefixExists && report.Prefix != "" {
		_, err := client.PutObject(ctx, report.Bucket, report.Prefix, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", report.Prefix), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", report.Prefix))
	}
	return nil
}

func folder(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
