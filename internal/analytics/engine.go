package analytics

import (
	"sort"
	"time"

	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/internal/shared"
)

// DefaultRepurchaseWindowDays is the threshold after which a client's last
// purchase qualifies them for proactive recontact.
const DefaultRepurchaseWindowDays = 28

// Summary carries the derived financial metrics for a set of sales. Every
// field is recomputed from stored sale fields on each evaluation.
type Summary struct {
	TotalSales      float64 `json:"total_sales"`
	TotalCommission float64 `json:"total_commission"`
	TotalNetProfit  float64 `json:"total_net_profit"`
	TotalFreight    float64 `json:"total_freight"`
	SalesCount      int     `json:"sales_count"`
	AverageTicket   float64 `json:"average_ticket"`
}

// ProductVolume is one bar of the per-product revenue chart.
type ProductVolume struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RepurchaseEntry is a client due for recontact, referencing their most
// recent sale.
type RepurchaseEntry struct {
	Sale      sales.Sale `json:"sale"`
	DaysSince int        `json:"days_since"`
}

// FilterByDateRange returns the subset of sales dated within [start, end],
// both bounds inclusive and truncated to midnight. A nil bound is open.
// Input order is preserved.
func FilterByDateRange(list []sales.Sale, start, end *time.Time) []sales.Sale {
	if start == nil && end == nil {
		out := make([]sales.Sale, len(list))
		copy(out, list)
		return out
	}
	out := make([]sales.Sale, 0, len(list))
	for _, sale := range list {
		day := shared.Midnight(sale.Date)
		if start != nil && day.Before(shared.Midnight(*start)) {
			continue
		}
		if end != nil && day.After(shared.Midnight(*end)) {
			continue
		}
		out = append(out, sale)
	}
	return out
}

// Summarize folds the sales left to right into the dashboard metrics.
// Equivalent to computing every per-record value independently and summing;
// the average ticket is 0 when there are no sales.
func Summarize(list []sales.Sale) Summary {
	var s Summary
	for _, sale := range list {
		s.TotalSales += sale.Amount
		s.TotalCommission += sale.CommissionValue
		s.TotalNetProfit += sale.NetProfit()
		s.TotalFreight += sale.Freight
		s.SalesCount++
	}
	if s.SalesCount > 0 {
		s.AverageTicket = s.TotalSales / float64(s.SalesCount)
	}
	return s
}

// ProductRollup groups sales by product name and sums the gross amount per
// group. Output is ordered descending by value; ties keep the order of
// first occurrence.
func ProductRollup(list []sales.Sale) []ProductVolume {
	totals := make(map[string]float64)
	var order []string
	for _, sale := range list {
		if _, seen := totals[sale.ProductName]; !seen {
			order = append(order, sale.ProductName)
		}
		totals[sale.ProductName] += sale.Amount
	}

	out := make([]ProductVolume, 0, len(order))
	for _, name := range order {
		out = append(out, ProductVolume{Name: name, Value: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// RepurchaseList selects, per distinct client, the sale with the latest
// date (first encountered wins on equal dates) and keeps clients whose
// elapsed calendar days meet the window. Output is sorted most recent
// first and holds at most one entry per client.
func RepurchaseList(list []sales.Sale, today time.Time, windowDays int) []RepurchaseEntry {
	if windowDays <= 0 {
		windowDays = DefaultRepurchaseWindowDays
	}

	latest := make(map[string]sales.Sale)
	var order []string
	for _, sale := range list {
		current, seen := latest[sale.ClientName]
		if !seen {
			order = append(order, sale.ClientName)
			latest[sale.ClientName] = sale
			continue
		}
		if sale.Date.After(current.Date) {
			latest[sale.ClientName] = sale
		}
	}

	out := make([]RepurchaseEntry, 0, len(order))
	for _, client := range order {
		sale := latest[client]
		days := shared.DaysSince(today, sale.Date)
		if days >= windowDays {
			out = append(out, RepurchaseEntry{Sale: sale, DaysSince: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sale.Date.After(out[j].Sale.Date)
	})
	return out
}
