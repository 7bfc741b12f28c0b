// Package export serialises dashboard data for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/internal/shared"
)

// salesHeader is the fixed column set of the sales report.
var salesHeader = []string{
	"Client", "Product", "Amount", "Discount", "Commission",
	"Cost", "Freight", "Ad Cost", "Date", "Status",
}

// WriteSalesCSV emits one row per sale in the filtered view, numeric
// fields formatted to two decimal places.
func WriteSalesCSV(w io.Writer, list []sales.Sale) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(salesHeader); err != nil {
		return err
	}
	for _, sale := range list {
		record := []string{
			sale.ClientName,
			sale.ProductName,
			formatFloat(sale.Amount),
			formatFloat(sale.Discount),
			formatFloat(sale.CommissionValue),
			formatFloat(sale.Cost),
			formatFloat(sale.Freight),
			formatFloat(sale.AdCost),
			sale.Date.Format(shared.DateLayout),
			string(sale.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Filename stamps the report name with the export date.
func Filename(exportedAt time.Time) string {
	return fmt.Sprintf("sales_report_%s.csv", exportedAt.Format(shared.DateLayout))
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
