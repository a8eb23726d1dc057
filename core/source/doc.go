// Package source locates the plant's data files and decodes them into tables.
//
// Every dataset (generator history, tank-level history, fuel purchases, inverter
// logs, factory electricity) has an ordered list of historical file names. Each name
// is tried at each location in turn:
//
//  1. LocalFetcher: the configured data directory.
//  2. StorageFetcher: an S3/MinIO bucket (when storage is enabled).
//  3. RemoteFetcher: an HTTP base URL with a short fixed timeout (when configured).
//
// The first non-empty table wins, except for datasets marked Merge (legacy inverter
// months), which concatenate every file found. Failures at a location are logged and
// treated as "source unavailable"; a dataset found nowhere loads as nil.
package source
