// Package health reports which input datasets were found, where they came from,
// and whether they carry the columns the reports rely on. When object storage is
// enabled, CheckBucket also lists the data files in the bucket.
package health
