// Package cache provides a TTL-based memoization store with stampede protection.
//
// Report generation is recomputed from flat files on every request. When the same
// inputs, date range and pricing mode are requested again within a short window, the
// previous result is reused. The store is a plain collaborator that callers inject, so
// it can be disabled (TTL 0) or replaced in tests; there is no package-level state.
//
// # Keys
//
// Key hashes arbitrary string parts (table fingerprints, range bounds, policy) with
// SHA-256 so that keys stay short regardless of input size.
//
// # Usage
//
//	store := cache.New[*fuel.Report](10 * time.Minute)
//	report, err := store.GetOrBuild(ctx, cache.Key(fp, from, to, mode), build)
package cache
