package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosetrack/rosetrack/internal/inventory"
	"github.com/rosetrack/rosetrack/internal/shared"
)

// InventoryPort is the slice of the inventory service the workflow needs.
type InventoryPort interface {
	GetByProduct(ctx context.Context, productName string) (*inventory.Item, error)
	AdjustStock(ctx context.Context, req inventory.AdjustStockRequest) error
}

// LeadPort deletes a converted lead.
type LeadPort interface {
	Delete(ctx context.Context, id string) error
}

// EffectMarker records applied saga effects per sale id so retries never
// double-apply. Implemented by shared.EffectStore.
type EffectMarker interface {
	MarkApplied(ctx context.Context, saleID, effect string) error
	Unmark(ctx context.Context, saleID, effect string) error
}

// CacheBumper invalidates cached aggregates after a write. Implemented by
// the analytics cache; nil disables invalidation.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service runs the sale recording workflow.
type Service struct {
	repo      Repository
	inventory InventoryPort
	leads     LeadPort
	effects   EffectMarker
	cache     CacheBumper
	policies  ChannelPolicies
}

// NewService builds Service. A nil policies map falls back to the defaults.
func NewService(repo Repository, inv InventoryPort, leads LeadPort, effects EffectMarker, cache CacheBumper, policies ChannelPolicies) *Service {
	if policies == nil {
		policies = DefaultChannelPolicies()
	}
	return &Service{repo: repo, inventory: inv, leads: leads, effects: effects, cache: cache, policies: policies}
}

// Record validates the draft, snapshots the unit cost, applies the channel
// policy and persists the sale, then runs the follow-up effects: one stock
// decrement and, for conversions, the lead deletion. The write sequence is
// not transactional; a sale whose effects failed stays persisted and the
// effects can be retried.
func (s *Service) Record(ctx context.Context, req CreateSaleRequest) (*RecordResult, error) {
	if req.ClientName == "" {
		return nil, fmt.Errorf("%w: client name is required", shared.ErrValidation)
	}
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", shared.ErrValidation)
	}
	if req.CommissionRate < 0 || req.CommissionRate > 100 {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", shared.ErrValidation)
	}
	if req.Discount < 0 || req.Freight < 0 || req.AdCost < 0 {
		return nil, fmt.Errorf("%w: deductions must not be negative", shared.ErrValidation)
	}

	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	policy, ok := s.policies.Lookup(req.SaleType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sale type %q", shared.ErrValidation, req.SaleType)
	}

	item, err := s.inventory.GetByProduct(ctx, req.ProductName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %q is not registered in inventory", shared.ErrValidation, req.ProductName)
		}
		return nil, err
	}

	rate := req.CommissionRate
	if !policy.CommissionApplicable {
		rate = 0
	}
	adCost := req.AdCost
	if !policy.AdCostApplicable {
		adCost = 0
	}

	sale := Sale{
		ID:              uuid.NewString(),
		ClientName:      req.ClientName,
		ProductName:     req.ProductName,
		Amount:          req.Amount,
		Cost:            item.CostPrice,
		Freight:         req.Freight,
		Discount:        req.Discount,
		AdCost:          adCost,
		CommissionRate:  rate,
		CommissionValue: Commission(req.Amount, rate),
		Date:            date,
		SaleType:        req.SaleType,
		Status:          SaleStatusPending,
	}

	saved, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	s.bumpCache(ctx)

	pending := s.applyEffects(ctx, saved.ID, saved.ProductName, req.LeadID)
	return &RecordResult{Sale: saved, PendingEffects: pending}, nil
}

// RetryEffects re-runs the follow-up effects for an already persisted sale.
func (s *Service) RetryEffects(ctx context.Context, saleID string, req RetryEffectsRequest) ([]string, error) {
	if saleID == "" {
		return nil, fmt.Errorf("%w: sale id is required", shared.ErrValidation)
	}
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	return s.applyEffects(ctx, saleID, req.ProductName, req.LeadID), nil
}

// applyEffects runs each side effect at most once per sale id and returns
// the names of effects that still need a retry.
func (s *Service) applyEffects(ctx context.Context, saleID, productName string, leadID *string) []string {
	var pending []string

	if err := s.runEffect(ctx, saleID, shared.EffectStockDecrement, func() error {
		return s.inventory.AdjustStock(ctx, inventory.AdjustStockRequest{ProductName: productName, Delta: -1})
	}); err != nil {
		pending = append(pending, shared.EffectStockDecrement)
	}

	if leadID != nil && *leadID != "" {
		if err := s.runEffect(ctx, saleID, shared.EffectLeadDeletion, func() error {
			err := s.leads.Delete(ctx, *leadID)
			if errors.Is(err, shared.ErrNotFound) {
				// Already gone: the effect is complete.
				return nil
			}
			return err
		}); err != nil {
			pending = append(pending, shared.EffectLeadDeletion)
		}
	}

	return pending
}

func (s *Service) runEffect(ctx context.Context, saleID, effect string, fn func() error) error {
	if err := s.effects.MarkApplied(ctx, saleID, effect); err != nil {
		if errors.Is(err, shared.ErrEffectApplied) {
			return nil
		}
		return err
	}
	if err := fn(); err != nil {
		// Release the marker so the effect stays retryable.
		_ = s.effects.Unmark(ctx, saleID, effect)
		return err
	}
	return nil
}

// List returns sales matching the filter. Bounds are inclusive calendar
// days; malformed dates are rejected, never coerced.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Sale, error) {
	query := QueryFilter{Search: filter.Search}
	if filter.Start != nil && *filter.Start != "" {
		start, err := shared.ParseDate(*filter.Start)
		if err != nil {
			return nil, err
		}
		query.Start = &start
	}
	if filter.End != nil && *filter.End != "" {
		end, err := shared.ParseDate(*filter.End)
		if err != nil {
			return nil, err
		}
		query.End = &end
	}
	return s.repo.List(ctx, query)
}

// Delete removes a sale entirely. There is no update-in-place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bumpCache(ctx)
	return nil
}

func (s *Service) bumpCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Best effort: a stale aggregate expires with the TTL anyway.
	_ = s.cache.Bump(ctx)
}
