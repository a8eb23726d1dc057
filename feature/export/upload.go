package export

import (
	"bytes"
	"context"
	"fmt"

	"energy-dashboard/core/storage"

	"github.com/minio/minio-go/v7"
)

// Content types of the generated artifacts.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
	ContentTypePNG  = "image/png"
	ContentTypeJSON = "application/json"
)

// Uploader copies generated reports into the object store.
type Uploader struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Upload stores data under Prefix/name and returns the object name.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	object := storage.ObjectName(u.Prefix, name)
	_, err := u.Client.PutObject(ctx, u.Bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", object, err)
	}
	return object, nil
}
