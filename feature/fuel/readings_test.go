package fuel

import (
	"testing"
	"time"

	"energy-dashboard/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReadings(t *testing.T) {
	tbl := table.New("history.csv", []string{"Entity ID", "Value", "Timestamp"}, [][]string{
		{"sensor.generator_fuel_level", "81.5", "2025-01-01T08:00:00Z"},
		{"sensor.generator_fuel_level", "unavailable", "2025-01-01T08:05:00Z"},
		{"sensor.generator_fuel_level", "80", "not a time"},
		{" sensor.generator_fuel_level ", "79", "2025-01-01 08:10:00"},
	})

	readings, dropped := ParseReadings(tbl, time.UTC)

	assert.Equal(t, 1, dropped)
	require.Len(t, readings, 3)
	require.NotNil(t, readings[0].Value)
	assert.Equal(t, 81.5, *readings[0].Value)
	assert.Nil(t, readings[1].Value)
	assert.Equal(t, backupEntity, readings[2].EntityID)
	assert.Equal(t, ts(t, "2025-01-01T08:10:00Z"), readings[2].Timestamp.UTC())
}

func TestParseReadings_MissingColumns(t *testing.T) {
	tbl := table.New("gen.csv", []string{"entity_id", "state"}, [][]string{{"sensor.x", "1"}})

	readings, dropped := ParseReadings(tbl, time.UTC)

	assert.Empty(t, readings)
	assert.Zero(t, dropped)

	readings, _ = ParseReadings(nil, time.UTC)
	assert.Empty(t, readings)
}

func TestSelectReadings(t *testing.T) {
	readings := []SensorReading{
		reading(t, "2025-01-02T10:00:00Z", primaryEntity, 3),
		reading(t, "2025-01-01T10:00:00Z", primaryEntity, 1),
		reading(t, "2025-01-01T10:00:00Z", primaryEntity, 2),
		reading(t, "2025-01-01T11:00:00Z", backupEntity, 9),
		reading(t, "2025-01-03T00:00:00Z", primaryEntity, 4),
	}

	got := SelectReadings(readings, primaryEntity, dateRange(t, "2025-01-01", "2025-01-02"), time.UTC)

	require.Len(t, got, 3)
	assert.Equal(t, 1.0, *got[0].Value)
	assert.Equal(t, 2.0, *got[1].Value)
	assert.Equal(t, 3.0, *got[2].Value)
	assert.Equal(t, 3.0, *readings[0].Value)
}
