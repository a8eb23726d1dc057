package source_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/core/source"
	"energy-dashboard/core/storage/mocks"
	"energy-dashboard/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const historyCSV = "entity_id,state,last_changed\nsensor.generator_fuel_level,100,2025-01-01T00:00:00Z\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Local(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "history.csv", historyCSV)

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: dir}})

	tbl, err := l.Load(context.Background(), source.DatasetFuelHistory)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, "history.csv", tbl.Name)
	assert.Equal(t, table.OriginLocal, tbl.Origin)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoader_PrefersEarlierCandidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "history (5).csv", historyCSV)
	writeFile(t, dir, "history.csv", historyCSV+"sensor.generator_fuel_level,99,2025-01-01T01:00:00Z\n")

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: dir}})

	tbl, err := l.Load(context.Background(), source.DatasetFuelHistory)
	require.NoError(t, err)
	assert.Equal(t, "history (5).csv", tbl.Name)
}

func TestLoader_SkipsEmptyAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "history (5).csv", "entity_id,state,last_changed\n")
	writeFile(t, dir, "history (5).xlsx", "this is not a workbook")
	writeFile(t, dir, "history.csv", historyCSV)

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: dir}})

	tbl, err := l.Load(context.Background(), source.DatasetFuelHistory)
	require.NoError(t, err)
	assert.Equal(t, "history.csv", tbl.Name)
}

func TestLoader_MissingDatasetIsNil(t *testing.T) {
	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: t.TempDir()}})

	tbl, err := l.Load(context.Background(), source.DatasetGenerator)
	require.NoError(t, err)
	assert.Nil(t, tbl)
}

func TestLoader_MergeConcatenates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Solar_Goodwe&Fronius-Jan.csv", "entity_id,state,last_changed\nsensor.goodwe_power,10,2025-01-01T10:00:00Z\n")
	writeFile(t, dir, "Solar_goodwe&Fronius_may.csv", "entity_id,state,last_changed\nsensor.fronius_power,20,2025-05-01T10:00:00Z\n")

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: dir}})

	tbl, err := l.Load(context.Background(), source.DatasetSolarLegacy)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, string(source.DatasetSolarLegacy), tbl.Name)
}

func TestLoader_StorageFallback(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "energy-data", "plant/gen (2).csv", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("GetObject", mock.Anything, "energy-data", "plant/gen (2).xlsx", mock.Anything).
		Return(nil, errors.New("connection refused"))
	client.On("GetObject", mock.Anything, "energy-data", "plant/gen.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("entity_id,state,last_changed\nsensor.generator_fuel_consumed,50,2025-01-01T00:00:00Z\n")), nil)

	var unavailable []table.Origin
	l := source.NewLoader(zap.NewNop(),
		[]source.Fetcher{
			source.LocalFetcher{Dir: t.TempDir()},
			source.StorageFetcher{Client: client, Bucket: "energy-data", Prefix: "plant"},
		},
		source.WithUnavailableHook(func(ds source.Dataset, origin table.Origin) {
			unavailable = append(unavailable, origin)
		}),
	)

	tbl, err := l.Load(context.Background(), source.DatasetGenerator)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, table.OriginStorage, tbl.Origin)
	assert.Equal(t, "gen.csv", tbl.Name)
	assert.Equal(t, []table.Origin{table.OriginStorage}, unavailable)
	client.AssertExpectations(t)
}

func TestLoader_RemoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/New_inverter.csv":
			_, _ = w.Write([]byte("entity_id,state,last_changed\nsensor.inverter_1_power,12.5,2025-01-01T10:00:00Z\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{
		source.LocalFetcher{Dir: t.TempDir()},
		source.NewRemoteFetcher(srv.URL, time.Second),
	})

	tbl, err := l.Load(context.Background(), source.DatasetSolar)
	require.NoError(t, err)
	require.NotNil(t, tbl)
	assert.Equal(t, table.OriginRemote, tbl.Origin)
}

func TestLoader_RemoteFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	calls := 0
	l := source.NewLoader(zap.NewNop(),
		[]source.Fetcher{source.NewRemoteFetcher(srv.URL, time.Second)},
		source.WithUnavailableHook(func(source.Dataset, table.Origin) { calls++ }),
	)

	tbl, err := l.Load(context.Background(), source.DatasetSolar)
	require.NoError(t, err)
	assert.Nil(t, tbl)
	assert.Equal(t, 2, calls)
}

func TestLoader_Cached(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "history.csv", historyCSV)

	l := source.NewLoader(zap.NewNop(),
		[]source.Fetcher{source.LocalFetcher{Dir: dir}},
		source.WithCache(cache.New[*table.Table](time.Hour)),
	)

	first, err := l.Load(context.Background(), source.DatasetFuelHistory)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "history.csv")))

	second, err := l.Load(context.Background(), source.DatasetFuelHistory)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := source.NewLoader(zap.NewNop(), []source.Fetcher{source.LocalFetcher{Dir: t.TempDir()}})
	_, err := l.Load(ctx, source.DatasetFuelHistory)
	assert.ErrorIs(t, err, context.Canceled)
}
