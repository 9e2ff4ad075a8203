// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client (AWS S3 and self-hosted MinIO) behind the Client
// interface so the inventory feature can export stock snapshots and the
// integrity feature can verify the bucket, while tests use core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
