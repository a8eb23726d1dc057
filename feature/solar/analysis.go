package solar

import (
	"sort"
	"strings"
	"time"

	"energy-dashboard/core/period"
	"energy-dashboard/feature/fuel"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrendDays is the length of Stats.GenerationTrend.
const TrendDays = 7

// Report is one solar analysis.
type Report struct {
	Range     period.DateRange  `json:"range" yaml:"range"`
	Daily     []DailyGeneration `json:"daily" yaml:"daily"`
	Inverters []InverterDay     `json:"inverters" yaml:"inverters"`
	Hourly    []HourlyProfile   `json:"hourly" yaml:"hourly"`
	Stats     Stats             `json:"stats" yaml:"stats"`
}

// Empty reports whether no generation was found.
func (r *Report) Empty() bool {
	return r == nil || len(r.Daily) == 0
}

type inverterKey struct {
	day      time.Time
	inverter string
}

// Analyze aggregates power readings inside rng. Only entities containing
// cfg.EntityMatch with non-negative values count. enhanced selects the system
// type reported in the statistics.
func Analyze(readings []fuel.SensorReading, rng period.DateRange, loc *time.Location, cfg Config, enhanced bool) *Report {
	match := strings.ToLower(cfg.EntityMatch)
	byInverter := make(map[inverterKey][]float64)
	byHour := make(map[int][]float64)

	for _, r := range readings {
		if r.Value == nil || *r.Value < 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(r.EntityID), match) || !rng.ContainsTime(r.Timestamp, loc) {
			continue
		}
		k := inverterKey{day: period.Day(r.Timestamp, loc), inverter: r.EntityID}
		byInverter[k] = append(byInverter[k], *r.Value)
		hour := r.Timestamp.In(loc).Hour()
		byHour[hour] = append(byHour[hour], *r.Value)
	}

	inverters := inverterDays(byInverter, cfg.SamplesPerHour)
	daily := systemDays(inverters)
	report := &Report{
		Range:     rng,
		Daily:     daily,
		Inverters: inverters,
		Hourly:    hourlyProfile(byHour),
	}
	report.Stats = summarize(daily, cfg, enhanced)
	return report
}

func inverterDays(groups map[inverterKey][]float64, samplesPerHour float64) []InverterDay {
	out := make([]InverterDay, 0, len(groups))
	for k, values := range groups {
		out = append(out, InverterDay{
			Date:     k.day,
			Inverter: k.inverter,
			TotalKWh: floats.Sum(values) / samplesPerHour,
			PeakKW:   floats.Max(values),
			AvgKW:    stat.Mean(values, nil),
			Readings: len(values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Inverter < out[j].Inverter
	})
	return out
}

// systemDays folds day-ordered inverter rows into system totals.
func systemDays(inverters []InverterDay) []DailyGeneration {
	groups := lo.GroupBy(inverters, func(d InverterDay) time.Time { return d.Date })
	days := lo.Keys(groups)
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DailyGeneration, 0, len(days))
	for _, d := range days {
		rows := groups[d]
		g := DailyGeneration{
			Date:          d,
			TotalKWh:      lo.SumBy(rows, func(r InverterDay) float64 { return r.TotalKWh }),
			PeakKW:        lo.MaxBy(rows, func(a, b InverterDay) bool { return a.PeakKW > b.PeakKW }).PeakKW,
			AvgKW:         lo.SumBy(rows, func(r InverterDay) float64 { return r.AvgKW }) / float64(len(rows)),
			InverterCount: len(lo.UniqBy(rows, func(r InverterDay) string { return r.Inverter })),
		}
		if g.PeakKW > 0 {
			g.CapacityFactor = g.AvgKW / g.PeakKW * 100
		}
		out = append(out, g)
	}
	return out
}

func hourlyProfile(groups map[int][]float64) []HourlyProfile {
	out := make([]HourlyProfile, 0, len(groups))
	for hour, values := range groups {
		h := HourlyProfile{
			Hour:       hour,
			AvgPowerKW: stat.Mean(values, nil),
			MaxPowerKW: floats.Max(values),
			DataPoints: len(values),
		}
		if len(values) > 1 {
			h.Variability = stat.StdDev(values, nil)
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func summarize(daily []DailyGeneration, cfg Config, enhanced bool) Stats {
	s := Stats{
		SystemType:      SystemLegacy,
		GenerationTrend: []float64{},
	}
	if enhanced {
		s.SystemType = SystemEnhanced
	}
	if len(daily) == 0 {
		return s
	}

	kwh := make([]float64, len(daily))
	peaks := make([]float64, len(daily))
	factors := make([]float64, len(daily))
	counts := make([]float64, len(daily))
	for i, d := range daily {
		kwh[i] = d.TotalKWh
		peaks[i] = d.PeakKW
		factors[i] = d.CapacityFactor
		counts[i] = float64(d.InverterCount)
	}

	s.TotalKWh = floats.Sum(kwh)
	s.TotalValue = s.TotalKWh * cfg.ElectricityRate
	s.AverageDailyKWh = stat.Mean(kwh, nil)
	s.PeakKW = floats.Max(peaks)
	s.AverageCapacityFactor = stat.Mean(factors, nil)
	s.BestDayKWh = floats.Max(kwh)
	s.WorstDayKWh = floats.Min(kwh)
	s.OperatingDays = len(daily)
	s.AverageInverterCount = stat.Mean(counts, nil)
	s.CarbonOffsetKg = s.TotalKWh * cfg.CarbonFactor
	s.EstimatedMonthlySavings = s.TotalKWh * cfg.ElectricityRate * 30 / float64(len(daily))
	if cfg.BaselineCapacityKW > 0 && s.PeakKW > cfg.BaselineCapacityKW {
		s.CapacityImprovementPercent = (s.PeakKW - cfg.BaselineCapacityKW) / cfg.BaselineCapacityKW * 100
	}
	if len(kwh) >= TrendDays {
		s.GenerationTrend = append(s.GenerationTrend, kwh[len(kwh)-TrendDays:]...)
	}
	return s
}
