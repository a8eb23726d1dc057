package health

import (
	"context"
	"fmt"
	"path"
	"sort"

	"energy-dashboard/core/source"
	"energy-dashboard/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/samber/lo"
)

// BucketStatus describes the data bucket when object storage is enabled.
type BucketStatus struct {
	Bucket string   `json:"bucket" yaml:"bucket"`
	Prefix string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Exists bool     `json:"exists" yaml:"exists"`
	Files  []string `json:"files,omitempty" yaml:"files,omitempty"`
	// Unknown are files under the prefix that no dataset candidate names.
	Unknown []string `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// CheckBucket verifies the bucket and lists the data files directly under prefix.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (BucketStatus, error) {
	st := BucketStatus{Bucket: bucket, Prefix: prefix}

	ok, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return st, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	st.Exists = ok
	if !ok {
		return st, nil
	}

	listPrefix := storage.ObjectName(prefix, "")
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: listPrefix}) {
		if obj.Err != nil {
			return st, fmt.Errorf("listing bucket %s: %w", bucket, obj.Err)
		}
		if obj.Size == 0 {
			continue
		}
		st.Files = append(st.Files, path.Base(obj.Key))
	}
	sort.Strings(st.Files)

	known := make(map[string]bool)
	for _, spec := range source.DefaultSpecs {
		for _, name := range spec.Candidates {
			known[name] = true
		}
	}
	st.Unknown = lo.Filter(st.Files, func(name string, _ int) bool { return !known[name] })
	return st, nil
}
