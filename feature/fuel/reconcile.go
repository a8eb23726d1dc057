package fuel

import (
	"math"

	"github.com/samber/lo"
)

// Reconcile merges the two daily series into one figure per day over the union of
// their days, in date order. A day missing from a series counts as 0 there.
//
// Rules, first match wins:
//  1. primary > meaningful: primary
//  2. backup > meaningful: backup
//  3. otherwise the larger of the two
func Reconcile(primary, backup Series, meaningful float64) []ReconciledConsumption {
	days := lo.Union(lo.Keys(primary), lo.Keys(backup))
	sortDays(days)

	out := make([]ReconciledConsumption, 0, len(days))
	for _, day := range days {
		p, b := primary[day], backup[day]
		rc := ReconciledConsumption{Date: day, PrimaryLiters: p, BackupLiters: b}
		switch {
		case p > meaningful:
			rc.Liters, rc.Source = p, SourcePrimary
		case b > meaningful:
			rc.Liters, rc.Source = b, SourceBackup
		default:
			rc.Liters, rc.Source = math.Max(p, b), SourceMax
		}
		out = append(out, rc)
	}
	return out
}
