package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"energy-dashboard/core/storage"
	"energy-dashboard/core/table"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned by a Fetcher when it has no such file.
// It is the quiet case: the next location is tried without a warning.
var ErrNotFound = errors.New("file not found")

// Fetcher opens named data files from one location.
type Fetcher interface {
	// Origin identifies the location class.
	Origin() table.Origin
	// Fetch opens the named file. Callers close the reader.
	Fetch(ctx context.Context, name string) (io.ReadCloser, error)
}

// LocalFetcher reads files from a directory.
type LocalFetcher struct {
	Dir string
}

func (f LocalFetcher) Origin() table.Origin { return table.OriginLocal }

func (f LocalFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(f.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// StorageFetcher reads objects from a bucket.
type StorageFetcher struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (f StorageFetcher) Origin() table.Origin { return table.OriginStorage }

func (f StorageFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := f.Client.GetObject(ctx, f.Bucket, storage.ObjectName(f.Prefix, name), minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return obj, nil
}

// RemoteFetcher downloads files below a base URL with a fixed timeout.
type RemoteFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteFetcher builds a fetcher whose requests are bounded by timeout.
func NewRemoteFetcher(baseURL string, timeout time.Duration) RemoteFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return RemoteFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/") + "/",
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f RemoteFetcher) Origin() table.Origin { return table.OriginRemote }

func (f RemoteFetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
