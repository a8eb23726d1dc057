package fuel

import (
	"math"
	"sort"
	"time"

	"energy-dashboard/core/period"
)

// ExtractPrimary computes daily consumption from the primary tank-level sensor.
//
// Sources are tried in order, detailed first. The first one holding any reading of
// entity inside rng is used, even if none of its readings are numeric.
func ExtractPrimary(detailed, fallback []SensorReading, entity string, rng period.DateRange, loc *time.Location, th Thresholds) Series {
	for _, src := range [][]SensorReading{detailed, fallback} {
		sel := SelectReadings(src, entity, rng, loc)
		if len(sel) == 0 {
			continue
		}
		return primaryDaily(numeric(sel), loc, th)
	}
	return Series{}
}

func primaryDaily(readings []SensorReading, loc *time.Location, th Thresholds) Series {
	sums := make(Series)
	for i := 1; i < len(readings); i++ {
		diff := *readings[i].Value - *readings[i-1].Value
		day := period.Day(readings[i].Timestamp, loc)
		sums[day] += math.Max(0, -diff)
	}

	out := make(Series, len(sums))
	for day, liters := range sums {
		if liters >= th.PrimaryMinDaily {
			out[day] = liters
		}
	}
	return out
}

// ExtractBackup computes daily consumption from the dense backup level sensor.
//
// Every day holding a numeric reading appears in the result, with 0 when no drop
// qualified.
func ExtractBackup(readings []SensorReading, entity string, rng period.DateRange, loc *time.Location, th Thresholds) Series {
	sel := numeric(SelectReadings(readings, entity, rng, loc))
	if len(sel) == 0 {
		return Series{}
	}

	raw := make([]float64, len(sel))
	for i, r := range sel {
		raw[i] = *r.Value
	}
	smooth := RollingMedian(raw, th.BackupWindow)

	out := make(Series)
	out[period.Day(sel[0].Timestamp, loc)] = 0
	for i := 1; i < len(sel); i++ {
		day := period.Day(sel[i].Timestamp, loc)
		if _, seen := out[day]; !seen {
			out[day] = 0
		}
		diff := smooth[i] - smooth[i-1]
		if diff < -th.BackupMinDrop && diff > -th.BackupMaxDrop {
			out[day] += -diff
		}
	}

	for day, liters := range out {
		out[day] = math.Min(liters, th.BackupDailyCap)
	}
	return out
}

// RollingMedian applies a centered rolling median of window samples.
// The window for position i spans [i-window/2, i+window-1-window/2]; positions
// whose window runs past either end keep their raw value. The input is not modified.
func RollingMedian(values []float64, window int) []float64 {
	out := append([]float64(nil), values...)
	if window < 1 || window > len(values) {
		return out
	}

	before := window / 2
	after := window - 1 - before
	buf := make([]float64, window)
	for i := before; i+after < len(values); i++ {
		copy(buf, values[i-before:i+after+1])
		out[i] = median(buf)
	}
	return out
}

// median sorts xs in place.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}
