// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. Plant data files (sensor history exports, the fuel
// purchase workbook, inverter logs) can live in a bucket instead of the local data
// directory, and generated reports can be uploaded next to them. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream; missing keys fail immediately.
//   - PutObject: Uploads content (with size and options).
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	obj, err := client.GetObject(ctx, "energy-data", "history.csv", minio.GetObjectOptions{})
package storage
