package fuel

import (
	"sort"
	"strings"
	"time"

	"energy-dashboard/core/period"
	"energy-dashboard/core/table"
	"energy-dashboard/core/utils"
)

// Canonical sensor table columns.
const (
	ColTimestamp = "last_changed"
	ColEntity    = "entity_id"
	ColState     = "state"
)

// SensorSynonyms maps the header variants seen in sensor exports to canonical names.
var SensorSynonyms = table.Synonyms{
	"last_changed": ColTimestamp,
	"last_updated": ColTimestamp,
	"timestamp":    ColTimestamp,
	"time":         ColTimestamp,
	"datetime":     ColTimestamp,
	"date_time":    ColTimestamp,
	"entity_id":    ColEntity,
	"entity":       ColEntity,
	"sensor":       ColEntity,
	"sensor_id":    ColEntity,
	"state":        ColState,
	"value":        ColState,
	"reading":      ColState,
}

// ParseReadings converts a sensor table into readings.
// Rows whose timestamp cannot be parsed are dropped and counted. Non-numeric states
// are kept with a nil Value. A nil table, or one without the expected columns,
// yields no readings.
func ParseReadings(t *table.Table, loc *time.Location) (readings []SensorReading, dropped int) {
	if t.Empty() {
		return nil, 0
	}
	t = t.Rename(SensorSynonyms)
	if !t.Has(ColTimestamp, ColEntity, ColState) {
		return nil, 0
	}
	tsIdx, entIdx, stIdx := t.Index(ColTimestamp), t.Index(ColEntity), t.Index(ColState)

	readings = make([]SensorReading, 0, len(t.Rows))
	for _, row := range t.Rows {
		ts, ok := utils.ParseTime(table.Cell(row, tsIdx), loc)
		if !ok {
			dropped++
			continue
		}
		r := SensorReading{
			Timestamp: ts,
			EntityID:  strings.TrimSpace(table.Cell(row, entIdx)),
		}
		if v, ok := utils.ToFloat(table.Cell(row, stIdx)); ok {
			r.Value = &v
		}
		readings = append(readings, r)
	}
	return readings, dropped
}

// SelectReadings returns the readings of one entity whose calendar day falls inside rng,
// in chronological order. Equal timestamps keep their input order. The input is not modified.
func SelectReadings(readings []SensorReading, entity string, rng period.DateRange, loc *time.Location) []SensorReading {
	var out []SensorReading
	for _, r := range readings {
		if r.EntityID == entity && rng.ContainsTime(r.Timestamp, loc) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// numeric drops readings without a value.
func numeric(readings []SensorReading) []SensorReading {
	out := make([]SensorReading, 0, len(readings))
	for _, r := range readings {
		if r.Value != nil {
			out = append(out, r)
		}
	}
	return out
}
