package sellers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pasalo-app/pasalo/internal/catalog"
	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

type memoryRepo struct {
	sellers map[uuid.UUID]Seller
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sellers: make(map[uuid.UUID]Seller)}
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Seller, error) {
	s, ok := m.sellers[id]
	if !ok {
		return Seller{}, fmt.Errorf("%w: seller %s", httpx.ErrNotFound, id)
	}
	return s, nil
}

func (m *memoryRepo) List(_ context.Context, search string) ([]Seller, error) {
	var out []Seller
	for _, s := range m.sellers {
		if search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryRepo) ListWithStats(_ context.Context, search string) ([]SellerWithStats, error) {
	sellers, _ := m.List(context.Background(), search)
	var out []SellerWithStats
	for _, s := range sellers {
		out = append(out, SellerWithStats{Seller: s})
	}
	return out, nil
}

func (m *memoryRepo) Insert(_ context.Context, seller Seller) error {
	for _, existing := range m.sellers {
		if existing.Name == seller.Name {
			return fmt.Errorf("%w: seller %q already exists", httpx.ErrDuplicate, seller.Name)
		}
	}
	m.sellers[seller.ID] = seller
	return nil
}

func (m *memoryRepo) Update(_ context.Context, seller Seller) error {
	if _, ok := m.sellers[seller.ID]; !ok {
		return fmt.Errorf("%w: seller %s", httpx.ErrNotFound, seller.ID)
	}
	m.sellers[seller.ID] = seller
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.sellers[id]; !ok {
		return fmt.Errorf("%w: seller %s", httpx.ErrNotFound, id)
	}
	delete(m.sellers, id)
	return nil
}

func TestCreateTrimsName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	seller, err := svc.Create(context.Background(), CreateSellerRequest{
		Name:     "  TopKicks  ",
		Platform: catalog.PlatformWeidian,
	})
	require.NoError(t, err)
	require.Equal(t, "TopKicks", seller.Name)
}

func TestCreateDuplicateName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateSellerRequest{
		Name:     "TopKicks",
		Platform: catalog.PlatformWeidian,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateSellerRequest{
		Name:     "TopKicks",
		Platform: catalog.PlatformTaobao,
	})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateRejectsUnknownPlatform(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateSellerRequest{
		Name:     "TopKicks",
		Platform: catalog.Platform("shopee"),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateMergesPatch(t *testing.T) {
	svc := NewService(newMemoryRepo())

	seller, err := svc.Create(context.Background(), CreateSellerRequest{
		Name:     "TopKicks",
		Platform: catalog.PlatformWeidian,
	})
	require.NoError(t, err)

	link := "https://weidian.com/topkicks"
	updated, err := svc.Update(context.Background(), seller.ID, UpdateSellerRequest{
		StoreLink: &link,
	})
	require.NoError(t, err)
	require.Equal(t, "TopKicks", updated.Name)
	require.Equal(t, link, *updated.StoreLink)
}

func TestUpdateRejectsBlankName(t *testing.T) {
	svc := NewService(newMemoryRepo())

	seller, err := svc.Create(context.Background(), CreateSellerRequest{
		Name:     "TopKicks",
		Platform: catalog.PlatformWeidian,
	})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(context.Background(), seller.ID, UpdateSellerRequest{Name: &blank})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListFiltersBySearch(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, name := range []string{"TopKicks", "Luxe Garments"} {
		_, err := svc.Create(context.Background(), CreateSellerRequest{
			Name:     name,
			Platform: catalog.PlatformWeidian,
		})
		require.NoError(t, err)
	}

	matches, err := svc.List(context.Background(), " kicks ")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "TopKicks", matches[0].Name)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
