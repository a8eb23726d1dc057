package health

import (
	"context"
	"fmt"
	"time"

	"energy-dashboard/core/source"
	"energy-dashboard/core/table"
	"energy-dashboard/core/utils"
	"energy-dashboard/feature/fuel"

	"github.com/samber/lo"
)

// Expectation lists the canonical columns a dataset should carry and the
// synonym table used to recognize them.
type Expectation struct {
	Columns   []string
	Synonyms  table.Synonyms
	TimeField string
}

var sensorExpectation = Expectation{
	Columns:   []string{fuel.ColTimestamp, fuel.ColEntity, fuel.ColState},
	Synonyms:  fuel.SensorSynonyms,
	TimeField: fuel.ColTimestamp,
}

// Expectations maps datasets to their expected shape. Datasets absent here are
// only checked for presence.
var Expectations = map[source.Dataset]Expectation{
	source.DatasetGenerator:         sensorExpectation,
	source.DatasetGeneratorDetailed: sensorExpectation,
	source.DatasetFuelHistory:       sensorExpectation,
	source.DatasetFactory:           sensorExpectation,
	source.DatasetSolar:             sensorExpectation,
	source.DatasetSolarLegacy:       sensorExpectation,
	source.DatasetFuelPurchases: {
		Columns:   []string{fuel.ColDate, fuel.ColLiters, fuel.ColPricePerLiter},
		Synonyms:  fuel.LedgerSynonyms,
		TimeField: fuel.ColDate,
	},
}

// DatasetStatus describes one dataset.
type DatasetStatus struct {
	Dataset        source.Dataset `json:"dataset" yaml:"dataset"`
	Found          bool           `json:"found" yaml:"found"`
	Name           string         `json:"name,omitempty" yaml:"name,omitempty"`
	Origin         table.Origin   `json:"origin,omitempty" yaml:"origin,omitempty"`
	Rows           int            `json:"rows" yaml:"rows"`
	Columns        []string       `json:"columns,omitempty" yaml:"columns,omitempty"`
	MissingColumns []string       `json:"missing_columns,omitempty" yaml:"missing_columns,omitempty"`
	First          *time.Time     `json:"first,omitempty" yaml:"first,omitempty"`
	Last           *time.Time     `json:"last,omitempty" yaml:"last,omitempty"`
}

// Healthy reports whether the dataset was found with every expected column.
func (s DatasetStatus) Healthy() bool {
	return s.Found && len(s.MissingColumns) == 0
}

// Check inspects one table. A nil table is reported as not found.
func Check(ds source.Dataset, t *table.Table, loc *time.Location) DatasetStatus {
	st := DatasetStatus{Dataset: ds}
	if t.Empty() {
		return st
	}
	st.Found = true
	st.Name = t.Name
	st.Origin = t.Origin
	st.Rows = t.Len()
	st.Columns = append([]string(nil), t.Columns...)

	exp, ok := Expectations[ds]
	if !ok {
		return st
	}
	renamed := t.Rename(exp.Synonyms)
	st.MissingColumns = lo.Filter(exp.Columns, func(c string, _ int) bool { return !renamed.Has(c) })

	idx := renamed.Index(exp.TimeField)
	if idx < 0 {
		return st
	}
	for _, row := range renamed.Rows {
		ts, ok := utils.ParseTime(table.Cell(row, idx), loc)
		if !ok {
			continue
		}
		if st.First == nil || ts.Before(*st.First) {
			first := ts
			st.First = &first
		}
		if st.Last == nil || ts.After(*st.Last) {
			last := ts
			st.Last = &last
		}
	}
	return st
}

// Run loads every known dataset and checks it, in display order.
func Run(ctx context.Context, l *source.Loader, loc *time.Location) ([]DatasetStatus, error) {
	out := make([]DatasetStatus, 0, len(source.AllDatasets))
	for _, ds := range source.AllDatasets {
		t, err := l.Load(ctx, ds)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", ds, err)
		}
		out = append(out, Check(ds, t, loc))
	}
	return out, nil
}
