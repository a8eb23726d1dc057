package period_test

import (
	"testing"
	"time"

	"energy-dashboard/core/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	johannesburg := time.FixedZone("SAST", 2*60*60)

	ts := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), period.Day(ts, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), period.Day(ts, johannesburg))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), period.Day(ts, nil))
}

func TestMonth(t *testing.T) {
	day := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), period.Month(day))
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
		days    int
	}{
		{"SingleDay", "2025-01-01", "2025-01-01", false, 1},
		{"Week", "2025-01-01", "2025-01-07", false, 7},
		{"Reversed", "2025-01-07", "2025-01-01", true, 0},
		{"BadStart", "01/01/2025", "2025-01-07", true, 0},
		{"BadEnd", "2025-01-01", "tomorrow", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := period.ParseDateRange(tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days, r.Days())
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r, err := period.ParseDateRange("2025-01-02", "2025-01-04")
	require.NoError(t, err)

	assert.False(t, r.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))

	assert.True(t, r.ContainsTime(time.Date(2025, 1, 4, 23, 59, 0, 0, time.UTC), time.UTC))
	assert.Equal(t, "2025-01-02..2025-01-04", r.String())
}

func TestLastDays(t *testing.T) {
	ref := time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC)
	r := period.LastDays(ref, 30, time.UTC)
	assert.Equal(t, 30, r.Days())
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), r.End)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), r.Start)
}
