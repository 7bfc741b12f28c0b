package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosetrack/rosetrack/internal/sales"
)

func TestWriteSalesCSV(t *testing.T) {
	list := []sales.Sale{
		{
			ClientName:      "Ana",
			ProductName:     "Serum",
			Amount:          200,
			Discount:        10,
			CommissionValue: 20,
			Cost:            25,
			Freight:         15.5,
			AdCost:          0,
			Date:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:          sales.SaleStatusPaid,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, list))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Client", "Product", "Amount", "Discount", "Commission",
		"Cost", "Freight", "Ad Cost", "Date", "Status",
	}, records[0])
	assert.Equal(t, []string{
		"Ana", "Serum", "200.00", "10.00", "20.00",
		"25.00", "15.50", "0.00", "2026-03-15", "Paid",
	}, records[1])
}

func TestWriteSalesCSVEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestWriteSalesCSVEscapesCommas(t *testing.T) {
	list := []sales.Sale{
		{ClientName: `Ana "Bia", Ltda`, ProductName: "Serum", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSalesCSV(&buf, list))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Ana "Bia", Ltda`, records[1][0])
}

func TestFilename(t *testing.T) {
	stamp := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "sales_report_2026-03-15.csv", Filename(stamp))
}
