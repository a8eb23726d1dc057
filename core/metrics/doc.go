// Package metrics collects per-run Prometheus metrics for the report commands.
//
// The dashboard is a batch job, so metrics live in a private registry created per
// run and are written once to a node_exporter textfile instead of being scraped.
// All Recorder methods are safe on a nil receiver, which lets callers skip metrics
// entirely by passing nil.
package metrics
