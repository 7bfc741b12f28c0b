package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/internal/shared"
)

// SalesSource loads sale records for aggregation. Satisfied by the sales
// repository; the engine itself never touches I/O.
type SalesSource interface {
	List(ctx context.Context, filter sales.QueryFilter) ([]sales.Sale, error)
}

// RangeFilter is an optional inclusive calendar-day range.
type RangeFilter struct {
	Start *time.Time
	End   *time.Time
}

// Dashboard bundles everything one dashboard render needs.
type Dashboard struct {
	Summary    Summary           `json:"summary"`
	Products   []ProductVolume   `json:"products"`
	Repurchase []RepurchaseEntry `json:"repurchase"`
}

// Service evaluates the aggregation engine over loaded sales, with
// cache-aware lookups.
type Service struct {
	source     SalesSource
	cache      *Cache
	windowDays int
	now        func() time.Time
}

// NewService builds Service. A nil cache disables caching; windowDays <= 0
// falls back to the default repurchase window.
func NewService(source SalesSource, cache *Cache, windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = DefaultRepurchaseWindowDays
	}
	return &Service{source: source, cache: cache, windowDays: windowDays, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// GetSummary computes the financial summary over the filtered range.
func (s *Service) GetSummary(ctx context.Context, filter RangeFilter) (Summary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		list, err := s.loadFiltered(ctx, filter)
		if err != nil {
			return Summary{}, err
		}
		return Summarize(list), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Summary{}, err
		}
		return value.(Summary), nil
	}

	key, err := s.cache.BuildKey(ctx, "analytics", "summary", rangeToken(filter))
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	if err := s.cache.FetchJSON(ctx, key, &summary, loader); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// GetProductRollup computes per-product gross revenue over the filtered range.
func (s *Service) GetProductRollup(ctx context.Context, filter RangeFilter) ([]ProductVolume, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		list, err := s.loadFiltered(ctx, filter)
		if err != nil {
			return nil, err
		}
		return ProductRollup(list), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]ProductVolume), nil
	}

	key, err := s.cache.BuildKey(ctx, "analytics", "products", rangeToken(filter))
	if err != nil {
		return nil, err
	}
	var rollup []ProductVolume
	if err := s.cache.FetchJSON(ctx, key, &rollup, loader); err != nil {
		return nil, err
	}
	return rollup, nil
}

// GetRepurchaseList computes the recontact candidates over the full sales
// history. The repurchase window ignores the date filter: the last purchase
// per client is what matters.
func (s *Service) GetRepurchaseList(ctx context.Context) ([]RepurchaseEntry, error) {
	today := shared.Midnight(s.now())
	loader := func(ctx context.Context) (interface{}, error) {
		list, err := s.source.List(ctx, sales.QueryFilter{})
		if err != nil {
			return nil, err
		}
		return RepurchaseList(list, today, s.windowDays), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]RepurchaseEntry), nil
	}

	key, err := s.cache.BuildKey(ctx, "analytics", "repurchase", today.Format(shared.DateLayout))
	if err != nil {
		return nil, err
	}
	var entries []RepurchaseEntry
	if err := s.cache.FetchJSON(ctx, key, &entries, loader); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetFilteredSales returns the raw filtered rows, uncached, for export.
func (s *Service) GetFilteredSales(ctx context.Context, filter RangeFilter) ([]sales.Sale, error) {
	return s.loadFiltered(ctx, filter)
}

func (s *Service) loadFiltered(ctx context.Context, filter RangeFilter) ([]sales.Sale, error) {
	list, err := s.source.List(ctx, sales.QueryFilter{})
	if err != nil {
		return nil, err
	}
	return FilterByDateRange(list, filter.Start, filter.End), nil
}

func rangeToken(filter RangeFilter) string {
	parts := []string{"open", "open"}
	if filter.Start != nil {
		parts[0] = shared.Midnight(*filter.Start).Format(shared.DateLayout)
	}
	if filter.End != nil {
		parts[1] = shared.Midnight(*filter.End).Format(shared.DateLayout)
	}
	return strings.Join(parts, "_")
}
