// Package analytichttp serves the dashboard aggregation endpoints.
package analytichttp

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rosetrack/rosetrack/internal/analytics"
	"github.com/rosetrack/rosetrack/internal/analytics/export"
	"github.com/rosetrack/rosetrack/internal/platform/httpx"
	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/internal/shared"
)

const requestTimeout = 5 * time.Second

// AnalyticsService defines the dashboard data contract used by the handler.
type AnalyticsService interface {
	GetSummary(ctx context.Context, filter analytics.RangeFilter) (analytics.Summary, error)
	GetProductRollup(ctx context.Context, filter analytics.RangeFilter) ([]analytics.ProductVolume, error)
	GetRepurchaseList(ctx context.Context) ([]analytics.RepurchaseEntry, error)
	GetFilteredSales(ctx context.Context, filter analytics.RangeFilter) ([]sales.Sale, error)
}

// Handler coordinates HTTP requests for the dashboard.
type Handler struct {
	logger  *slog.Logger
	service AnalyticsService
	csvPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service AnalyticsService) *Handler {
	h := &Handler{
		logger:  logger,
		service: service,
		now:     time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	// Concurrent dashboard reloads race in the client; collapse identical
	// in-flight computations instead of repeating them.
	value, err, _ := singleflightDashboard(r.Context(), "dashboard:"+rangeKey(filter), func(ctx context.Context) (interface{}, error) {
		return h.loadDashboard(ctx, filter)
	})
	if err != nil {
		h.logger.Error("load dashboard failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, value.(*analytics.Dashboard))
}

func (h *Handler) loadDashboard(ctx context.Context, filter analytics.RangeFilter) (*analytics.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var dashboard analytics.Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := h.service.GetSummary(ctx, filter)
		if err != nil {
			return err
		}
		dashboard.Summary = summary
		return nil
	})
	g.Go(func() error {
		products, err := h.service.GetProductRollup(ctx, filter)
		if err != nil {
			return err
		}
		dashboard.Products = products
		return nil
	})
	g.Go(func() error {
		repurchase, err := h.service.GetRepurchaseList(ctx)
		if err != nil {
			return err
		}
		dashboard.Repurchase = repurchase
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dashboard.Products == nil {
		dashboard.Products = []analytics.ProductVolume{}
	}
	if dashboard.Repurchase == nil {
		dashboard.Repurchase = []analytics.RepurchaseEntry{}
	}
	return &dashboard, nil
}

func (h *Handler) handleRepurchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries, err := h.service.GetRepurchaseList(ctx)
	if err != nil {
		h.logger.Error("load repurchase list failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []analytics.RepurchaseEntry{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"repurchase": entries})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.service.GetFilteredSales(ctx, filter)
	if err != nil {
		h.logger.Error("load sales for export failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteSalesCSV(buf, list); err != nil {
		h.logger.Error("write sales csv failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseRange(r *http.Request) (analytics.RangeFilter, error) {
	var filter analytics.RangeFilter
	if start := r.URL.Query().Get("start"); start != "" {
		t, err := shared.ParseDate(start)
		if err != nil {
			return analytics.RangeFilter{}, err
		}
		filter.Start = &t
	}
	if end := r.URL.Query().Get("end"); end != "" {
		t, err := shared.ParseDate(end)
		if err != nil {
			return analytics.RangeFilter{}, err
		}
		filter.End = &t
	}
	return filter, nil
}

func rangeKey(filter analytics.RangeFilter) string {
	key := "open_open"
	if filter.Start != nil && filter.End != nil {
		key = filter.Start.Format(shared.DateLayout) + "_" + filter.End.Format(shared.DateLayout)
	} else if filter.Start != nil {
		key = filter.Start.Format(shared.DateLayout) + "_open"
	} else if filter.End != nil {
		key = "open_" + filter.End.Format(shared.DateLayout)
	}
	return key
}
