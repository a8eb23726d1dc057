package fuel

import (
	"testing"
	"time"

	"energy-dashboard/core/period"

	"github.com/stretchr/testify/require"
)

const (
	primaryEntity = "sensor.generator_fuel_consumed"
	backupEntity  = "sensor.generator_fuel_level"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(period.DateLayout, s)
	require.NoError(t, err)
	return d
}

func dateRange(t *testing.T, from, to string) period.DateRange {
	t.Helper()
	r, err := period.ParseDateRange(from, to)
	require.NoError(t, err)
	return r
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func reading(t *testing.T, at, entity string, v float64) SensorReading {
	return SensorReading{Timestamp: ts(t, at), EntityID: entity, Value: &v}
}

func nullReading(t *testing.T, at, entity string) SensorReading {
	return SensorReading{Timestamp: ts(t, at), EntityID: entity}
}

// levels builds readings of entity one minute apart starting at start.
func levels(t *testing.T, start, entity string, values ...float64) []SensorReading {
	t0 := ts(t, start)
	out := make([]SensorReading, len(values))
	for i, v := range values {
		v := v
		out[i] = SensorReading{Timestamp: t0.Add(time.Duration(i) * time.Minute), EntityID: entity, Value: &v}
	}
	return out
}
