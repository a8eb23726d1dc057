// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
// Log output always goes to stderr so that report output on stdout can be piped.
//
// # Run Awareness
//
// Every CLI invocation generates a run id. The WithRunID helper attaches it to the
// logger so that all lines produced by one report generation can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Report generated", zap.Int("active_days", n))
package logger
