package table_test

import (
	"bytes"
	"strings"
	"testing"

	"energy-dashboard/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	t.Run("HeaderAndRows", func(t *testing.T) {
		in := "\xef\xbb\xbfentity_id,state,last_changed\n" +
			"sensor.generator_fuel_level,100,2025-01-01T00:00:00Z\n" +
			"\n" +
			"sensor.generator_fuel_level,unavailable\n"

		tbl, err := table.ReadCSV("history.csv", strings.NewReader(in))
		require.NoError(t, err)

		assert.Equal(t, []string{"entity_id", "state", "last_changed"}, tbl.Columns)
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, 1, tbl.Index("state"))
		assert.Equal(t, "", table.Cell(tbl.Rows[1], 2))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		tbl, err := table.ReadCSV("empty.csv", strings.NewReader(""))
		require.NoError(t, err)
		assert.True(t, tbl.Empty())
	})
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Amount (Liters)", "Cost (Rands)"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2025-01-15", 100, 2250}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2025-02-03", 50.5, 1200.25}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tbl, err := table.Read("fuel.xlsx", &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Amount (Liters)", "Cost (Rands)"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "100", tbl.Rows[0][1])
	assert.Equal(t, "50.5", tbl.Rows[1][1])
}

func TestFormatOf(t *testing.T) {
	f, err := table.FormatOf("gen (2).CSV")
	require.NoError(t, err)
	assert.Equal(t, table.FormatCSV, f)

	f, err = table.FormatOf("Durr bottling Generator filling.xlsx")
	require.NoError(t, err)
	assert.Equal(t, table.FormatXLSX, f)

	_, err = table.FormatOf("notes.txt")
	assert.ErrorIs(t, err, table.ErrUnsupportedFormat)
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amount (Liters)", "amount_liters"},
		{" Price/Litre ", "price_litre"},
		{"Cost(Rands)", "cost_rands"},
		{"price_per_liter", "price_per_liter"},
		{"DATE", "date"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, table.NormalizeColumn(tt.in))
		})
	}
}

func TestSynonyms(t *testing.T) {
	s := table.Synonyms{"amount_liters": "liters", "cost_rands": "cost"}

	assert.Equal(t, "liters", s.Canonical("Amount (Liters)"))
	assert.Equal(t, "cost", s.Canonical("COST (RANDS)"))
	assert.Equal(t, "supplier", s.Canonical("Supplier"))

	merged := s.Merge(table.Synonyms{"Qty": "liters"})
	assert.Equal(t, "liters", merged.Canonical("qty"))
	assert.Equal(t, "liters", merged.Canonical("amount liters"))
	_, touched := s["qty"]
	assert.False(t, touched)
}

func TestRenameAndFingerprint(t *testing.T) {
	tbl := table.New("ledger", []string{"Amount (Liters)", "Date"}, [][]string{{"10", "2025-01-01"}})
	renamed := tbl.Rename(table.Synonyms{"amount_liters": "liters"})

	assert.Equal(t, []string{"liters", "date"}, renamed.Columns)
	assert.Equal(t, []string{"Amount (Liters)", "Date"}, tbl.Columns)
	assert.True(t, renamed.Has("liters", "date"))
	assert.NotEqual(t, tbl.Fingerprint(), renamed.Fingerprint())

	same := table.New("other-name", []string{"Amount (Liters)", "Date"}, [][]string{{"10", "2025-01-01"}})
	assert.Equal(t, tbl.Fingerprint(), same.Fingerprint())

	var nilTable *table.Table
	assert.Equal(t, "", nilTable.Fingerprint())
	assert.True(t, nilTable.Empty())
}

func TestConcat(t *testing.T) {
	a := table.New("a", []string{"entity_id", "state"}, [][]string{{"sensor.a_power", "1"}})
	b := table.New("b", []string{"state", "entity_id", "extra"}, [][]string{{"2", "sensor.b_power", "x"}})

	out := table.Concat("solar", a, nil, b)
	require.NotNil(t, out)
	assert.Equal(t, []string{"entity_id", "state"}, out.Columns)
	assert.Equal(t, [][]string{{"sensor.a_power", "1"}, {"sensor.b_power", "2"}}, out.Rows)

	assert.Nil(t, table.Concat("none"))
}
