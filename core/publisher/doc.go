// Package publisher pushes report summaries to an MQTT broker as retained JSON
// messages, so home-automation dashboards always show the latest run.
package publisher
