package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosetrack/rosetrack/internal/shared"
)

// ServiceConfig groups optional settings.
type ServiceConfig struct {
	LowStockThreshold int
}

// Service coordinates inventory valuation and stock movements.
type Service struct {
	repo      Repository
	threshold int
}

// NewService builds Service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &Service{repo: repo, threshold: threshold}
}

// Register computes the unit cost from a batch purchase and upserts the
// item keyed by product name. Quantity must be positive so the division
// can never produce Inf or NaN.
func (s *Service) Register(ctx context.Context, req RegisterItemRequest) (*Item, error) {
	if req.ProductName == "" {
		return nil, fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", shared.ErrValidation)
	}
	if req.TotalPurchaseValue < 0 {
		return nil, fmt.Errorf("%w: total purchase value must not be negative", shared.ErrValidation)
	}
	if req.DefaultSellPrice != nil && *req.DefaultSellPrice < 0 {
		return nil, fmt.Errorf("%w: default sell price must not be negative", shared.ErrValidation)
	}

	item := Item{
		ID:               uuid.NewString(),
		ProductName:      req.ProductName,
		Quantity:         req.Quantity,
		CostPrice:        req.TotalPurchaseValue / float64(req.Quantity),
		DefaultSellPrice: req.DefaultSellPrice,
	}
	return s.repo.Upsert(ctx, item)
}

// List returns every item decorated with the low-stock flag.
func (s *Service) List(ctx context.Context) ([]ItemView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{Item: item, LowStock: item.LowStock(s.threshold)})
	}
	return views, nil
}

// GetByProduct resolves the item for a product name.
func (s *Service) GetByProduct(ctx context.Context, productName string) (*Item, error) {
	if productName == "" {
		return nil, fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	return s.repo.GetByProduct(ctx, productName)
}

// AdjustStock applies a signed delta. Negative resulting stock is tolerated;
// the list view flags it as low instead of rejecting the movement.
func (s *Service) AdjustStock(ctx context.Context, req AdjustStockRequest) error {
	if req.ProductName == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if req.Delta == 0 {
		return fmt.Errorf("%w: delta must not be zero", shared.ErrValidation)
	}
	return s.repo.AdjustStock(ctx, req.ProductName, req.Delta)
}

// Delete removes an item by id. Historical sales keep their cost snapshots.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
