package items

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pasalo-app/pasalo/internal/catalog"
	"github.com/pasalo-app/pasalo/internal/platform/httpx"
	"github.com/pasalo-app/pasalo/internal/settings"
)

type memoryRepo struct {
	items map[uuid.UUID]Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]Item)}
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Item, error) {
	item, ok := m.items[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: item %s", httpx.ErrNotFound, id)
	}
	return item, nil
}

func (m *memoryRepo) List(_ context.Context, filter ListFilter) ([]Item, error) {
	var out []Item
	for _, item := range m.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memoryRepo) Recent(_ context.Context, limit int) ([]Item, error) {
	var out []Item
	for _, item := range m.items {
		if len(out) == limit {
			break
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memoryRepo) Insert(_ context.Context, item Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *memoryRepo) Update(_ context.Context, item Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return fmt.Errorf("%w: item %s", httpx.ErrNotFound, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

func (m *memoryRepo) UpdateMany(ctx context.Context, items []Item) error {
	for _, item := range items {
		if err := m.Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: item %s", httpx.ErrNotFound, id)
	}
	delete(m.items, id)
	return nil
}

func (m *memoryRepo) CountByStatus(_ context.Context) (map[Status]int, error) {
	counts := make(map[Status]int)
	for _, item := range m.items {
		counts[item.Status]++
	}
	return counts, nil
}

type staticSettings struct{}

func (staticSettings) Snapshot(context.Context) (settings.Snapshot, error) {
	return settings.Snapshot{
		CNYToPHPRate:            7.8,
		ForwarderBuyServiceRate: 8.6,
		DefaultForwarderRate:    480,
	}, nil
}

type countingBumper struct {
	calls int
}

func (c *countingBumper) Bump(context.Context) error {
	c.calls++
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, *countingBumper) {
	t.Helper()
	repo := newMemoryRepo()
	bumper := &countingBumper{}
	svc := NewService(repo, staticSettings{}, bumper)
	return svc, repo, bumper
}

func ptrf(v float64) *float64 { return &v }
func ptrs(v string) *string   { return &v }

func validCreate() CreateItemRequest {
	return CreateItemRequest{
		Name:      "Jordan 4 Retro",
		Category:  catalog.CategoryShoes,
		Size:      ptrs("42.5"),
		Seller:    "TopKicks",
		PriceCNY:  500,
		QCStatus:  catalog.QCNotReceived,
		Status:    StatusOrdered,
		OrderDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAppliesSnapshotAndDerives(t *testing.T) {
	svc, repo, bumper := newTestService(t)

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	require.Equal(t, 7.8, item.ExchangeRateUsed)
	require.Equal(t, 480.0, item.ForwarderRatePerKg)
	require.Equal(t, 3900.0, item.PricePHP)
	require.Equal(t, 3900.0, item.TotalCost)
	require.Nil(t, item.Profit)
	require.Nil(t, item.SoldDate)
	require.Len(t, repo.items, 1)
	require.Equal(t, 1, bumper.calls)
}

func TestCreateForwarderBuyDefaultsRate(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.IsForwarderBuy = true

	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, item.ForwarderBuyRateUsed)
	require.Equal(t, 8.6, *item.ForwarderBuyRateUsed)
	// (500*0.1 + 10) * 8.6 = 516.00, plus the flat QC fee.
	require.Equal(t, 516.0, *item.ForwarderBuyFeePHP)
	require.Equal(t, 150.0, *item.QCServiceFeePHP)
	require.Equal(t, 4566.0, item.TotalCost)
}

func TestCreateRejectsLegacyStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.Status = StatusLegacySold

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRejectsBadShoeSize(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.Size = ptrs("huge")

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, catalog.ErrShoesSize)
}

func TestCreateNormalizesClothesSize(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.Category = catalog.CategoryClothes
	req.Size = ptrs(" xl ")

	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "XL", *item.Size)
}

func TestUpdateMergesAndRederives(t *testing.T) {
	svc, _, _ := newTestService(t)

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), item.ID, UpdateItemRequest{
		PriceCNY:     ptrf(600),
		SellingPrice: ptrf(6000),
	})
	require.NoError(t, err)
	require.Equal(t, 4680.0, updated.PricePHP)
	require.Equal(t, 4680.0, updated.TotalCost)
	require.NotNil(t, updated.Profit)
	require.Equal(t, 1320.0, *updated.Profit)
	// Untouched fields survive the merge.
	require.Equal(t, "Jordan 4 Retro", updated.Name)
	require.Equal(t, "42.5", *updated.Size)
}

func TestUpdateForwarderBuyToggleOffClearsFees(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.IsForwarderBuy = true
	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, item.ForwarderBuyFeePHP)

	off := false
	updated, err := svc.Update(context.Background(), item.ID, UpdateItemRequest{
		IsForwarderBuy: &off,
	})
	require.NoError(t, err)
	require.Nil(t, updated.ForwarderBuyRateUsed)
	require.Nil(t, updated.ForwarderBuyFeePHP)
	require.Nil(t, updated.QCServiceFeePHP)
	require.Equal(t, 3900.0, updated.TotalCost)
}

func TestUpdateStatusStampsSoldDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), item.ID, UpdateStatusRequest{
		Status: StatusDeliveredToCustomer,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SoldDate)

	// A later refund keeps the sold date.
	refunded, err := svc.UpdateStatus(context.Background(), updated.ID, UpdateStatusRequest{
		Status: StatusRefunded,
	})
	require.NoError(t, err)
	require.NotNil(t, refunded.SoldDate)
	require.Equal(t, *updated.SoldDate, *refunded.SoldDate)
}

func TestUpdateQCApprovedAutoAdvances(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.Status = StatusQCSent
	req.QCStatus = catalog.QCPendingReview
	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	outcome, err := svc.UpdateQCStatus(context.Background(), item.ID, UpdateQCStatusRequest{
		QCStatus: catalog.QCApproved,
	})
	require.NoError(t, err)
	require.Equal(t, StatusItemShipout, outcome.Item.Status)
	require.Empty(t, outcome.Choices)
}

func TestUpdateQCRejectedOffersChoices(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validCreate()
	req.Status = StatusQCSent
	req.QCStatus = catalog.QCPendingReview
	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	outcome, err := svc.UpdateQCStatus(context.Background(), item.ID, UpdateQCStatusRequest{
		QCStatus: catalog.QCRejected,
	})
	require.NoError(t, err)
	require.Equal(t, StatusQCSent, outcome.Item.Status)
	require.Equal(t, []Status{StatusOrdered, StatusRefunded}, outcome.Choices)
}

func TestBulkUpdateStatusSkipsMissingAndSharesTimestamp(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	updated, err := svc.BulkUpdateStatus(context.Background(), BulkStatusRequest{
		IDs:    []uuid.UUID{first.ID, uuid.New(), second.ID},
		Status: StatusDeliveredToCustomer,
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	require.NotNil(t, updated[0].SoldDate)
	require.NotNil(t, updated[1].SoldDate)
	require.Equal(t, *updated[0].SoldDate, *updated[1].SoldDate)
}

func TestDeleteBumpsCache(t *testing.T) {
	svc, repo, bumper := newTestService(t)

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	before := bumper.calls

	require.NoError(t, svc.Delete(context.Background(), item.ID))
	require.Empty(t, repo.items)
	require.Equal(t, before+1, bumper.calls)

	err = svc.Delete(context.Background(), item.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
