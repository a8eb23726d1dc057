// Package fuel turns generator sensor history and a fuel purchase ledger into
// daily fuel consumption and cost records.
//
// # Pipeline
//
// Two instruments measure the generator tank:
//
//   - Primary: sensor.generator_fuel_consumed. Despite its name this is a tank
//     level. Readings are differenced, level drops count as consumption and
//     rises (refills) count as zero. Days below PrimaryMinDaily are noise.
//     The detailed export is tried first, then the lower-resolution one.
//   - Backup: sensor.generator_fuel_level, sampled densely but noisy. The series
//     is smoothed with a centered rolling median, then only drops strictly
//     between BackupMinDrop and BackupMaxDrop count. Daily totals are capped at
//     BackupDailyCap.
//
// Reconcile picks one figure per day: primary when it is above the meaningful
// threshold, else backup when it is, else the larger of the two.
//
// CleanLedger normalizes the purchase ledger once; a PriceChain then attributes a
// price to each day with an ordered list of strategies (nearest prior purchase or
// monthly average, then the ledger mean, then a fixed default).
//
// Compose multiplies consumption by price for active days only (liters > 0) and
// Summarize computes the report statistics over those active days.
//
// Data problems never fail a report: missing tables yield empty series, bad rows
// are dropped and out-of-band values are excluded.
package fuel
