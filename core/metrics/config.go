package metrics

// Config holds configuration for run metrics.
type Config struct {
	// Textfile is the path the registry is written to after each run (node_exporter textfile format).
	// Empty disables the write.
	Textfile string `mapstructure:"textfile" default:""`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" default:"energy_dashboard"`
}
