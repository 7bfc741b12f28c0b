package leads

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rosetrack/rosetrack/internal/shared"
)

// Service coordinates lead operations.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new lead with Pending status.
func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (*Lead, error) {
	if req.ClientName == "" {
		return nil, fmt.Errorf("%w: client name is required", shared.ErrValidation)
	}

	lead := Lead{
		ID:              uuid.NewString(),
		ClientName:      req.ClientName,
		Phone:           req.Phone,
		ProductInterest: req.ProductInterest,
		Notes:           req.Notes,
		Status:          StatusPending,
	}
	if req.ExpectedDate != nil && *req.ExpectedDate != "" {
		expected, err := shared.ParseDate(*req.ExpectedDate)
		if err != nil {
			return nil, err
		}
		lead.ExpectedDate = &expected
	}
	return s.repo.Create(ctx, lead)
}

// List returns every lead, newest first.
func (s *Service) List(ctx context.Context) ([]Lead, error) {
	return s.repo.List(ctx)
}

// Get resolves one lead by id.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves a lead between lifecycle tags.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown lead status %q", shared.ErrValidation, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a lead explicitly. Conversion into a sale goes through the
// sales workflow, which deletes the lead as its final saga step.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
