package solar

// Config holds solar analysis settings.
type Config struct {
	// SamplesPerHour converts summed kW samples to kWh.
	SamplesPerHour float64 `mapstructure:"samples_per_hour" default:"12"`
	// ElectricityRate values generated energy per kWh.
	ElectricityRate float64 `mapstructure:"electricity_rate" default:"1.50"`
	// CarbonFactor is the kg of CO2 avoided per kWh.
	CarbonFactor float64 `mapstructure:"carbon_factor" default:"0.95"`
	// BaselineCapacityKW is the peak of the system before the inverter upgrade.
	BaselineCapacityKW float64 `mapstructure:"baseline_capacity_kw" default:"25"`
	// EntityMatch selects power sensors by case-insensitive substring.
	EntityMatch string `mapstructure:"entity_match" default:"power"`
}

// DefaultConfig returns the plant settings.
func DefaultConfig() Config {
	return Config{
		SamplesPerHour:     12,
		ElectricityRate:    1.50,
		CarbonFactor:       0.95,
		BaselineCapacityKW: 25,
		EntityMatch:        "power",
	}
}
