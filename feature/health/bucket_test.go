package health

import (
	"context"
	"errors"
	"testing"

	"energy-dashboard/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

// TestCheckBucket tests that data files are listed and unrecognized ones flagged.
func TestCheckBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "energy-data").Return(true, nil)
	client.On("ListObjects", mock.Anything, "energy-data", minio.ListObjectsOptions{Prefix: "plant/"}).
		Return(objects(
			minio.ObjectInfo{Key: "plant/history.csv", Size: 120},
			minio.ObjectInfo{Key: "plant/notes.txt", Size: 4},
			minio.ObjectInfo{Key: "plant/gen.csv", Size: 80},
			minio.ObjectInfo{Key: "plant/empty.csv", Size: 0},
		))

	st, err := CheckBucket(context.Background(), client, "energy-data", "plant")
	require.NoError(t, err)
	assert.True(t, st.Exists)
	assert.Equal(t, []string{"gen.csv", "history.csv", "notes.txt"}, st.Files)
	assert.Equal(t, []string{"notes.txt"}, st.Unknown)
	client.AssertExpectations(t)
}

// TestCheckBucket_Missing tests that a missing bucket is reported without listing.
func TestCheckBucket_Missing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "energy-data").Return(false, nil)

	st, err := CheckBucket(context.Background(), client, "energy-data", "")
	require.NoError(t, err)
	assert.False(t, st.Exists)
	assert.Empty(t, st.Files)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

// TestCheckBucket_Error tests that access failures are returned.
func TestCheckBucket_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "energy-data").Return(false, errors.New("access denied"))

	_, err := CheckBucket(context.Background(), client, "energy-data", "")
	assert.ErrorContains(t, err, "access denied")
}
