package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

type memoryRepo struct {
	row *Settings
}

func (m *memoryRepo) Get(context.Context) (Settings, error) {
	if m.row == nil {
		return Settings{}, fmt.Errorf("%w: settings not initialised", httpx.ErrNotFound)
	}
	return *m.row, nil
}

func (m *memoryRepo) Upsert(_ context.Context, s Settings) error {
	m.row = &s
	return nil
}

func TestGetInitialisesDefaults(t *testing.T) {
	svc := NewService(&memoryRepo{})

	current, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7.8, current.CNYToPHPRate)
	require.Equal(t, 8.6, current.ForwarderBuyServiceRate)
	require.Equal(t, 480.0, current.DefaultForwarderRate)
	require.Equal(t, 700.0, current.MarkupMin)
	require.Equal(t, 850.0, current.MarkupMax)
}

func TestInitializeIsIdempotent(t *testing.T) {
	svc := NewService(&memoryRepo{})

	_, err := svc.Initialize(context.Background())
	require.NoError(t, err)

	rate := 8.1
	edited, err := svc.Update(context.Background(), UpdateSettingsRequest{CNYToPHPRate: &rate})
	require.NoError(t, err)
	require.Equal(t, 8.1, edited.CNYToPHPRate)

	again, err := svc.Initialize(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8.1, again.CNYToPHPRate)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	svc := NewService(&memoryRepo{})

	min := 750.0
	updated, err := svc.Update(context.Background(), UpdateSettingsRequest{MarkupMin: &min})
	require.NoError(t, err)
	require.Equal(t, 750.0, updated.MarkupMin)
	require.Equal(t, 850.0, updated.MarkupMax)
	require.Equal(t, 7.8, updated.CNYToPHPRate)
}

func TestUpdateRejectsInvertedMarkupBand(t *testing.T) {
	svc := NewService(&memoryRepo{})

	min := 900.0
	_, err := svc.Update(context.Background(), UpdateSettingsRequest{MarkupMin: &min})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestSnapshot(t *testing.T) {
	svc := NewService(&memoryRepo{})

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7.8, snap.CNYToPHPRate)
	require.Equal(t, 8.6, snap.ForwarderBuyServiceRate)
	require.Equal(t, 480.0, snap.DefaultForwarderRate)
}
