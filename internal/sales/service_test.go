package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosetrack/rosetrack/internal/inventory"
	"github.com/rosetrack/rosetrack/internal/shared"
)

type mockRepository struct {
	sales     map[string]Sale
	createErr error
	listCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{sales: make(map[string]Sale)}
}

func (m *mockRepository) List(ctx context.Context, filter QueryFilter) ([]Sale, error) {
	m.listCalls++
	var result []Sale
	for _, s := range m.sales {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockRepository) Create(ctx context.Context, sale Sale) (*Sale, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.sales[sale.ID] = sale
	saved := sale
	return &saved, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.sales[id]; !ok {
		return fmt.Errorf("%w: sale %s", shared.ErrNotFound, id)
	}
	delete(m.sales, id)
	return nil
}

type mockInventory struct {
	items       map[string]inventory.Item
	adjustErr   error
	adjustments []int
}

func newMockInventory() *mockInventory {
	return &mockInventory{items: make(map[string]inventory.Item)}
}

func (m *mockInventory) GetByProduct(ctx context.Context, productName string) (*inventory.Item, error) {
	item, ok := m.items[productName]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", shared.ErrNotFound, productName)
	}
	return &item, nil
}

func (m *mockInventory) AdjustStock(ctx context.Context, req inventory.AdjustStockRequest) error {
	if m.adjustErr != nil {
		return m.adjustErr
	}
	m.adjustments = append(m.adjustments, req.Delta)
	return nil
}

type mockLeads struct {
	deleted   []string
	deleteErr error
}

func (m *mockLeads) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockEffects struct {
	applied map[string]bool
	markErr error
}

func newMockEffects() *mockEffects {
	return &mockEffects{applied: make(map[string]bool)}
}

func (m *mockEffects) MarkApplied(ctx context.Context, saleID, effect string) error {
	if m.markErr != nil {
		return m.markErr
	}
	key := saleID + ":" + effect
	if m.applied[key] {
		return shared.ErrEffectApplied
	}
	m.applied[key] = true
	return nil
}

func (m *mockEffects) Unmark(ctx context.Context, saleID, effect string) error {
	delete(m.applied, saleID+":"+effect)
	return nil
}

type mockBumper struct {
	bumps int
}

func (m *mockBumper) Bump(ctx context.Context) error {
	m.bumps++
	return nil
}

type fixture struct {
	repo    *mockRepository
	inv     *mockInventory
	leads   *mockLeads
	effects *mockEffects
	bumper  *mockBumper
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newMockRepository(),
		inv:     newMockInventory(),
		leads:   &mockLeads{},
		effects: newMockEffects(),
		bumper:  &mockBumper{},
	}
	f.inv.items["Serum"] = inventory.Item{ID: "item-1", ProductName: "Serum", Quantity: 10, CostPrice: 25}
	f.svc = NewService(f.repo, f.inv, f.leads, f.effects, f.bumper, nil)
	return f
}

func validRequest() CreateSaleRequest {
	return CreateSaleRequest{
		ClientName:  "Ana",
		ProductName: "Serum",
		Amount:      200,
		Date:        "2026-03-15",
		SaleType:    SaleTypeInstagram,
	}
}

func TestRecordSnapshotsCostAndDecrementsStock(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Record(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Sale)

	assert.Equal(t, 25.0, result.Sale.Cost)
	assert.Equal(t, SaleStatusPending, result.Sale.Status)
	assert.Empty(t, result.PendingEffects)
	assert.Equal(t, []int{-1}, f.inv.adjustments)
	assert.Equal(t, 1, f.bumper.bumps)
}

func TestRecordCommissionOnlyOnReferral(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SaleType = SaleTypeReferral
	req.CommissionRate = 10

	result, err := f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Sale.CommissionRate)
	assert.Equal(t, 20.0, result.Sale.CommissionValue)

	// Same rate on a non-referral channel is zeroed out.
	req = validRequest()
	req.SaleType = SaleTypeInstagram
	req.CommissionRate = 10

	result, err = f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, result.Sale.CommissionRate)
	assert.Zero(t, result.Sale.CommissionValue)
}

func TestRecordAdCostOnlyOnPaidTraffic(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SaleType = SaleTypePaidTraffic
	req.AdCost = 30

	result, err := f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 30.0, result.Sale.AdCost)

	req = validRequest()
	req.SaleType = SaleTypePersonal
	req.AdCost = 30

	result, err = f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, result.Sale.AdCost)
}

func TestNetProfitComputation(t *testing.T) {
	sale := Sale{
		Amount:          200,
		Discount:        10,
		CommissionValue: 20,
		Cost:            25,
		Freight:         15,
		AdCost:          30,
	}
	assert.Equal(t, 100.0, sale.NetProfit())
}

func TestRecordRejectsUnknownProduct(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ProductName = "Ghost"

	_, err := f.svc.Record(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordRejectsMalformedDate(t *testing.T) {
	f := newFixture()

	for _, date := range []string{"", "15/03/2026", "2026-3-15", "not-a-date"} {
		req := validRequest()
		req.Date = date
		_, err := f.svc.Record(context.Background(), req)
		assert.ErrorIs(t, err, shared.ErrValidation, "date %q", date)
	}
}

func TestRecordRejectsUnknownSaleType(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SaleType = SaleType("Billboard")

	_, err := f.svc.Record(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordRejectsOutOfRangeCommission(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.CommissionRate = 120

	_, err := f.svc.Record(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordConversionDeletesLead(t *testing.T) {
	f := newFixture()

	leadID := "lead-7"
	req := validRequest()
	req.LeadID = &leadID

	result, err := f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.PendingEffects)
	assert.Equal(t, []string{"lead-7"}, f.leads.deleted)
}

func TestRecordConversionToleratesMissingLead(t *testing.T) {
	f := newFixture()
	f.leads.deleteErr = fmt.Errorf("%w: lead gone", shared.ErrNotFound)

	leadID := "lead-7"
	req := validRequest()
	req.LeadID = &leadID

	result, err := f.svc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.PendingEffects)
}

func TestRecordReportsPendingEffectOnStockFailure(t *testing.T) {
	f := newFixture()
	f.inv.adjustErr = errors.New("connection refused")

	result, err := f.svc.Record(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	assert.Equal(t, []string{shared.EffectStockDecrement}, result.PendingEffects)

	// The marker was released, so a retry re-runs the decrement.
	f.inv.adjustErr = nil
	pending, err := f.svc.RetryEffects(context.Background(), result.Sale.ID, RetryEffectsRequest{ProductName: "Serum"})
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, []int{-1}, f.inv.adjustments)
}

func TestRetryEffectsNeverDoubleApplies(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Record(context.Background(), validRequest())
	require.NoError(t, err)
	require.Empty(t, result.PendingEffects)

	pending, err := f.svc.RetryEffects(context.Background(), result.Sale.ID, RetryEffectsRequest{ProductName: "Serum"})
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, []int{-1}, f.inv.adjustments, "stock decremented exactly once")
}

func TestListRejectsMalformedBounds(t *testing.T) {
	f := newFixture()

	bad := "03-2026"
	_, err := f.svc.List(context.Background(), ListFilter{Start: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.svc.List(context.Background(), ListFilter{End: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteMissingSale(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Zero(t, f.bumper.bumps)
}

func TestDeleteBumpsCache(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Record(context.Background(), validRequest())
	require.NoError(t, err)
	f.bumper.bumps = 0

	require.NoError(t, f.svc.Delete(context.Background(), result.Sale.ID))
	assert.Equal(t, 1, f.bumper.bumps)
}

func TestChannelPoliciesFromOverrides(t *testing.T) {
	policies := ChannelPoliciesFromOverrides([]string{"Instagram"}, []string{"Instagram", "PaidTraffic"})

	p, ok := policies.Lookup(SaleTypeInstagram)
	require.True(t, ok)
	assert.True(t, p.CommissionApplicable)
	assert.True(t, p.AdCostApplicable)

	p, ok = policies.Lookup(SaleTypeReferral)
	require.True(t, ok)
	assert.False(t, p.CommissionApplicable)
}
