package personal

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
		return Item{}, fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, id)
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

func (m *memoryRepo) Insert(_ context.Context, item Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *memoryRepo) Update(_ context.Context, item Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, item.ID)
	}
	m.items[item.ID] = item
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, id)
	}
	delete(m.items, id)
	return nil
}

type staticSettings struct{}

func (staticSettings) Snapshot(context.Context) (settings.Snapshot, error) {
	return settings.Snapshot{
		CNYToPHPRate:            7.8,
		ForwarderBuyServiceRate: 8.6,
		DefaultForwarderRate:    480,
	}, nil
}

func ptrf(v float64) *float64 { return &v }
func ptrs(v string) *string   { return &v }

func validCreate() CreateItemRequest {
	return CreateItemRequest{
		Name:      "Seiko Mod",
		Category:  catalog.CategoryWatchesAccessories,
		Seller:    "WatchHub",
		PriceCNY:  300,
		QCStatus:  catalog.QCNotReceived,
		Status:    StatusOrdered,
		OrderDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateDerivesWithoutSellingFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticSettings{})

	req := validCreate()
	req.WeightKg = ptrf(0.5)

	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2340.0, item.PricePHP)
	require.NotNil(t, item.ForwarderFee)
	require.Equal(t, 240.0, *item.ForwarderFee)
	require.Equal(t, 2580.0, item.TotalCost)
}

func TestCreateClearsWatchSize(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticSettings{})

	req := validCreate()
	req.Size = ptrs("40mm")

	item, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, item.Size)
}

func TestCreateRejectsResaleOnlyStatus(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticSettings{})

	req := validCreate()
	req.Status = Status("delivered_to_customer")

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateRederives(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticSettings{})

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), item.ID, UpdateItemRequest{
		PriceCNY: ptrf(400),
	})
	require.NoError(t, err)
	require.Equal(t, 3120.0, updated.PricePHP)
	require.Equal(t, 3120.0, updated.TotalCost)
}

func TestUpdateStatusToDelivered(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticSettings{})

	item, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), item.ID, UpdateStatusRequest{
		Status: StatusDeliveredToMe,
	})
	require.NoError(t, err)
	require.Equal(t, StatusDeliveredToMe, updated.Status)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newMemoryRepo(), staticSettings{})

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
