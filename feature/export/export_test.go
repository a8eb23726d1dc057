package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"energy-dashboard/core/period"
	"energy-dashboard/core/storage/mocks"
	"energy-dashboard/feature/fuel"
	"energy-dashboard/feature/solar"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func day(s string) time.Time {
	t, _ := time.Parse(period.DateLayout, s)
	return t
}

func sampleReport() *fuel.Report {
	cost := 400.0
	return &fuel.Report{
		Range: period.DateRange{Start: day("2025-01-01"), End: day("2025-01-31")},
		Records: []fuel.DailyFuelRecord{
			{Date: day("2025-01-02"), FuelConsumedLiters: 15, FuelPricePerLiter: 20, DailyCost: 300, PrimarySource: 15, PriceSource: fuel.StrategyNearestPrior},
			{Date: day("2025-01-03"), FuelConsumedLiters: 4, FuelPricePerLiter: 20, DailyCost: 80, BackupSource: 4, PriceSource: fuel.StrategyNearestPrior},
		},
		Stats: fuel.Stats{TotalLiters: 19, TotalCost: 380, AverageDailyLiters: 9.5, AveragePrice: 20, ActiveDays: 2, PricingMode: fuel.PricingNearestPrior},
		Purchases: []fuel.PurchaseRecord{
			{Date: day("2025-01-01"), Liters: 20, Cost: &cost, PricePerLiter: 20},
			{Date: day("2025-01-10"), Liters: 10, PricePerLiter: 21.5},
		},
		Balance: []fuel.MonthlyBalance{
			{Month: day("2025-01-01"), PurchasedLiters: 30, PurchaseCost: 615, ConsumedLiters: 19, ConsumptionCost: 380, NetLiters: 11, UtilizationPercent: 63.33},
		},
		LedgerMean:  20.75,
		RealPricing: true,
	}
}

// TestFixed tests that values are written with two decimals.
func TestFixed(t *testing.T) {
	assert.Equal(t, "21.50", Fixed(21.5))
	assert.Equal(t, "0.00", Fixed(0))
	assert.Equal(t, "3.33", Fixed(10.0/3))
	assert.Equal(t, 3.33, Round(10.0/3))
}

// TestWriteFuelCSV tests the daily fuel CSV layout.
func TestWriteFuelCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFuelCSV(&buf, sampleReport().Records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(FuelHeader, ","), lines[0])
	assert.Equal(t, "2025-01-02,15.00,20.00,300.00,15.00,0.00,nearest_prior", lines[1])
}

// TestWritePurchasesCSV tests that a missing cost is left blank.
func TestWritePurchasesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePurchasesCSV(&buf, sampleReport().Purchases))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2025-01-01,20.00,400.00,20.00", lines[1])
	assert.Equal(t, "2025-01-10,10.00,,21.50", lines[2])
}

// TestWriteBalanceCSV tests the monthly balance rows.
func TestWriteBalanceCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBalanceCSV(&buf, sampleReport().Balance))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-01,30.00,615.00,19.00,380.00,11.00,63.33", lines[1])
}

// TestWriteSolarCSV tests the daily generation rows.
func TestWriteSolarCSV(t *testing.T) {
	var buf bytes.Buffer
	daily := []solar.DailyGeneration{{Date: day("2025-05-01"), TotalKWh: 120.5, PeakKW: 30, AvgKW: 12, InverterCount: 3, CapacityFactor: 40}}
	require.NoError(t, WriteSolarCSV(&buf, daily))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-05-01,120.50,30.00,12.00,3,40.00", lines[1])
}

// TestWriteFuelXLSX tests that the workbook reopens with every sheet populated.
func TestWriteFuelXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFuelXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDaily, SheetPurchases, SheetBalance}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01..2025-01-31", v)

	rows, err := f.GetRows(SheetDaily)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2025-01-02", rows[1][0])
	assert.Equal(t, "15", rows[1][1])

	rows, err = f.GetRows(SheetPurchases)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "21.5", rows[2][3])

	v, err = f.GetCellValue(SheetBalance, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", v)
}

// TestWriteFuelPDF tests that a PDF document is produced for full and empty reports.
func TestWriteFuelPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFuelPDF(&buf, sampleReport()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	buf.Reset()
	require.NoError(t, WriteFuelPDF(&buf, &fuel.Report{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// TestWriteFuelChart tests that the fuel chart is a PNG image.
func TestWriteFuelChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFuelChart(&buf, sampleReport().Records))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, WriteFuelChart(&buf, nil), ErrNoData)
}

// TestWriteSolarChart tests that the solar chart is a PNG image.
func TestWriteSolarChart(t *testing.T) {
	var buf bytes.Buffer
	daily := []solar.DailyGeneration{
		{Date: day("2025-05-01"), TotalKWh: 120},
		{Date: day("2025-05-02"), TotalKWh: 98},
	}
	require.NoError(t, WriteSolarChart(&buf, daily))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, WriteSolarChart(&buf, nil), ErrNoData)
}

// TestUploader tests that reports are stored under the export prefix.
func TestUploader(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "energy-data", "reports/fuel.csv", mock.Anything, int64(5),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == ContentTypeCSV })).
		Return(minio.UploadInfo{}, nil)

	u := &Uploader{Client: client, Bucket: "energy-data", Prefix: "reports/"}
	name, err := u.Upload(context.Background(), "fuel.csv", ContentTypeCSV, []byte("a,b\n1"))
	require.NoError(t, err)
	assert.Equal(t, "reports/fuel.csv", name)
	client.AssertExpectations(t)
}

// TestUploader_Error tests that storage failures are wrapped.
func TestUploader_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	u := &Uploader{Client: client, Bucket: "energy-data"}
	_, err := u.Upload(context.Background(), "fuel.pdf", ContentTypePDF, []byte("%PDF"))
	assert.ErrorContains(t, err, "uploading fuel.pdf")
}
