package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"energy-dashboard/core/logger"
	"energy-dashboard/core/metrics"
	"energy-dashboard/core/publisher"
	"energy-dashboard/core/source"
	"energy-dashboard/core/storage"
	"energy-dashboard/feature/fuel"
	"energy-dashboard/feature/solar"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Data holds where input files are looked up.
	Data source.Config `mapstructure:"data"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Fuel holds the reconciliation and pricing settings.
	Fuel fuel.Config `mapstructure:"fuel"`
	// Solar holds the generation analysis settings.
	Solar solar.Config `mapstructure:"solar"`
	// Metrics holds the run metrics settings.
	Metrics metrics.Config `mapstructure:"metrics"`
	// MQTT holds the report publisher settings.
	MQTT publisher.Config `mapstructure:"mqtt"`
}

// LoadConfig loads configuration from an optional config.yaml, the .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. FUEL_DEFAULT_PRICE -> fuel.default_price)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the pipelines cannot run with.
func (c *Config) Validate() error {
	if err := c.Fuel.Validate(); err != nil {
		return err
	}
	if c.Solar.SamplesPerHour <= 0 {
		return fmt.Errorf("solar samples_per_hour must be positive, got %g", c.Solar.SamplesPerHour)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return errors.New("storage bucket is required when storage is enabled")
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errors.New("mqtt broker is required when mqtt is enabled")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
