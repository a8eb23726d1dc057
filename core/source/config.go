package source

import "time"

// Config holds configuration for locating input data files.
type Config struct {
	// Dir is the local directory searched first for data files.
	Dir string `mapstructure:"dir" default:"."`
	// RemoteBaseURL is an optional HTTP base URL used when a file is found nowhere else.
	RemoteBaseURL string `mapstructure:"remote_base_url" default:""`
	// RemoteTimeoutSeconds bounds every remote fetch.
	RemoteTimeoutSeconds int `mapstructure:"remote_timeout_seconds" default:"10"`
	// CacheTTL is how long loaded tables are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"1h"`
}
