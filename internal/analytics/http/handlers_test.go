package analytichttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosetrack/rosetrack/internal/analytics"
	"github.com/rosetrack/rosetrack/internal/sales"
)

type stubService struct {
	summary    analytics.Summary
	products   []analytics.ProductVolume
	repurchase []analytics.RepurchaseEntry
	sales      []sales.Sale
	err        error
}

func (s *stubService) GetSummary(ctx context.Context, filter analytics.RangeFilter) (analytics.Summary, error) {
	return s.summary, s.err
}

func (s *stubService) GetProductRollup(ctx context.Context, filter analytics.RangeFilter) ([]analytics.ProductVolume, error) {
	return s.products, s.err
}

func (s *stubService) GetRepurchaseList(ctx context.Context) ([]analytics.RepurchaseEntry, error) {
	return s.repurchase, s.err
}

func (s *stubService) GetFilteredSales(ctx context.Context, filter analytics.RangeFilter) ([]sales.Sale, error) {
	return s.sales, s.err
}

func newTestRouter(service AnalyticsService) (*Handler, http.Handler) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return h, r
}

func TestHandleDashboard(t *testing.T) {
	service := &stubService{
		summary:  analytics.Summary{TotalSales: 300, SalesCount: 2, AverageTicket: 150},
		products: []analytics.ProductVolume{{Name: "Serum", Value: 300}},
	}
	_, router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dashboard analytics.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	assert.Equal(t, 300.0, dashboard.Summary.TotalSales)
	assert.Len(t, dashboard.Products, 1)
	assert.NotNil(t, dashboard.Repurchase, "empty list, never null")
}

func TestHandleDashboardRejectsMalformedRange(t *testing.T) {
	_, router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard?start=15-03-2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRepurchase(t *testing.T) {
	service := &stubService{
		repurchase: []analytics.RepurchaseEntry{
			{Sale: sales.Sale{ClientName: "Ana"}, DaysSince: 30},
		},
	}
	_, router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/repurchase", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Repurchase []analytics.RepurchaseEntry `json:"repurchase"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Repurchase, 1)
	assert.Equal(t, 30, payload.Repurchase[0].DaysSince)
}

func TestHandleCSVExport(t *testing.T) {
	service := &stubService{
		sales: []sales.Sale{
			{ClientName: "Ana", ProductName: "Serum", Amount: 200, Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Status: sales.SaleStatusPaid},
		},
	}
	h, router := newTestRouter(service)
	h.WithNow(func() time.Time {
		return time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	})

	req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales_report_2026-03-20.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Client,Product,Amount"))
	assert.Contains(t, lines[1], "200.00")
}

func TestHandleCSVExportRateLimited(t *testing.T) {
	_, router := newTestRouter(&stubService{})

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
