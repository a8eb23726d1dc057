package source

// Dataset names a logical input of the dashboard.
type Dataset string

const (
	DatasetGenerator         Dataset = "generator"
	DatasetGeneratorDetailed Dataset = "generator_detailed"
	DatasetFuelHistory       Dataset = "fuel_history"
	DatasetFactory           Dataset = "factory"
	DatasetFuelPurchases     Dataset = "fuel_purchases"
	DatasetSolar             Dataset = "solar"
	DatasetSolarLegacy       Dataset = "solar_legacy"
)

// Spec describes how a dataset is found.
type Spec struct {
	// Dataset is the logical name.
	Dataset Dataset
	// Candidates are file names tried in order; the first non-empty table wins.
	Candidates []string
	// Merge concatenates every non-empty candidate instead of stopping at the first.
	Merge bool
}

// DefaultSpecs lists the file names the plant has historically exported.
var DefaultSpecs = map[Dataset]Spec{
	DatasetGenerator: {
		Dataset:    DatasetGenerator,
		Candidates: []string{"gen (2).csv", "gen (2).xlsx", "gen.csv", "gen.xlsx"},
	},
	DatasetGeneratorDetailed: {
		Dataset:    DatasetGeneratorDetailed,
		Candidates: []string{"gen_detailed.csv", "gen_detailed.xlsx", "generator_detailed.csv", "generator_detailed.xlsx"},
	},
	DatasetFuelHistory: {
		Dataset:    DatasetFuelHistory,
		Candidates: []string{"history (5).csv", "history (5).xlsx", "history.csv", "history.xlsx"},
	},
	DatasetFactory: {
		Dataset:    DatasetFactory,
		Candidates: []string{"FACTORY ELEC.csv", "FACTORY ELEC.xlsx", "factory.csv", "factory.xlsx"},
	},
	DatasetFuelPurchases: {
		Dataset:    DatasetFuelPurchases,
		Candidates: []string{"Durr bottling Generator filling.xlsx", "fuel_purchases.xlsx", "fuel.xlsx", "fuel_purchases.csv"},
	},
	DatasetSolar: {
		Dataset:    DatasetSolar,
		Candidates: []string{"New_inverter.csv", "New_inverter.xlsx"},
	},
	DatasetSolarLegacy: {
		Dataset: DatasetSolarLegacy,
		Candidates: []string{
			"Solar_Goodwe&Fronius-Jan.csv",
			"Solar_goodwe&Fronius_April.csv",
			"Solar_goodwe&Fronius_may.csv",
		},
		Merge: true,
	},
}

// AllDatasets is the display order used by health reports.
var AllDatasets = []Dataset{
	DatasetGenerator,
	DatasetGeneratorDetailed,
	DatasetFuelHistory,
	DatasetFuelPurchases,
	DatasetFactory,
	DatasetSolar,
	DatasetSolarLegacy,
}
