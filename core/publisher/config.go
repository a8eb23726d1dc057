package publisher

// Config holds configuration for the MQTT broker that receives report summaries.
type Config struct {
	// Enabled turns on publishing.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Broker is the host:port of the MQTT broker.
	Broker string `mapstructure:"broker" default:""`
	// Username for broker authentication.
	Username string `mapstructure:"username" default:""`
	// Password for broker authentication.
	Password string `mapstructure:"password" default:""`
	// TopicPrefix is prepended to every topic.
	TopicPrefix string `mapstructure:"topic_prefix" default:"plant_energy"`
	// ClientID identifies this client to the broker.
	ClientID string `mapstructure:"client_id" default:"energy-dashboard"`
	// TimeoutSeconds bounds connect and publish waits.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
