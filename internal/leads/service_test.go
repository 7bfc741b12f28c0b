package leads

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosetrack/rosetrack/internal/shared"
)

type mockRepository struct {
	leads map[string]Lead
}

func newMockRepository() *mockRepository {
	return &mockRepository{leads: make(map[string]Lead)}
}

func (m *mockRepository) List(ctx context.Context) ([]Lead, error) {
	var result []Lead
	for _, l := range m.leads {
		result = append(result, l)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return nil, fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
	}
	return &l, nil
}

func (m *mockRepository) Create(ctx context.Context, lead Lead) (*Lead, error) {
	lead.CreatedAt = time.Now()
	m.leads[lead.ID] = lead
	saved := lead
	return &saved, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	l, ok := m.leads[id]
	if !ok {
		return fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
	}
	l.Status = status
	m.leads[id] = l
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.leads[id]; !ok {
		return fmt.Errorf("%w: lead %s", shared.ErrNotFound, id)
	}
	delete(m.leads, id)
	return nil
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc := NewService(newMockRepository())

	lead, err := svc.Create(context.Background(), CreateLeadRequest{ClientName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, lead.Status)
	assert.NotEmpty(t, lead.ID)
	assert.Nil(t, lead.ExpectedDate)
}

func TestCreateParsesExpectedDate(t *testing.T) {
	svc := NewService(newMockRepository())

	expected := "2026-04-01"
	lead, err := svc.Create(context.Background(), CreateLeadRequest{ClientName: "Ana", ExpectedDate: &expected})
	require.NoError(t, err)
	require.NotNil(t, lead.ExpectedDate)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *lead.ExpectedDate)
}

func TestCreateRejectsMalformedExpectedDate(t *testing.T) {
	svc := NewService(newMockRepository())

	bad := "01/04/2026"
	_, err := svc.Create(context.Background(), CreateLeadRequest{ClientName: "Ana", ExpectedDate: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRequiresClientName(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), CreateLeadRequest{})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	lead, err := svc.Create(context.Background(), CreateLeadRequest{ClientName: "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), lead.ID, StatusContacted))
	got, err := svc.Get(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)

	err = svc.UpdateStatus(context.Background(), lead.ID, Status("Archived"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateStatusMissingLead(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.UpdateStatus(context.Background(), "nope", StatusLost)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingLead(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
