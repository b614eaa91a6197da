// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the narrow Client interface that the
// file store needs: bucket bootstrap, upload, download and removal. Both AWS
// S3 and self-hosted MinIO endpoints are supported.
//
// The mocks subpackage carries a testify mock of Client for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
