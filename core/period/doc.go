// Package period provides calendar-day helpers shared by every report.
//
// Readings arrive with full timestamps; reports group them per calendar day in a
// configured time zone. Days are carried as UTC midnight values so that they can be
// used directly as map keys.
package period
