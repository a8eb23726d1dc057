// Package config provides configuration management for the energy dashboard.
//
// Settings come from three layers, later ones winning: an optional config.yaml
// in the config directory, a .env file next to it, and environment variables.
// Every key has a default declared in the `default` struct tag of its section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Data: local data directory, remote base URL and table cache TTL
//   - Storage: S3/MinIO credentials, bucket and prefixes
//   - Log: logging level and format
//   - Fuel: sensor entities, reconciliation thresholds and pricing
//   - Solar: sampling rate, tariff and carbon factor
//   - Metrics: Prometheus textfile output
//   - MQTT: broker used to publish report summaries
//
// Nested keys map to upper-case environment variables with underscores, e.g.
// fuel.pricing_mode is FUEL_PRICING_MODE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Fuel.DefaultPrice)
package config
