package items

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pasalo-app/pasalo/internal/catalog"
)

func TestStampSoldDateOnTerminalSale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := StampSoldDate(StatusArrivedPHWarehouse, StatusDeliveredToCustomer, nil, now)
	require.NotNil(t, got)
	require.Equal(t, now, *got)
}

func TestStampSoldDateNeverCleared(t *testing.T) {
	sold := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := StampSoldDate(StatusDeliveredToCustomer, StatusRefunded, &sold, now)
	require.NotNil(t, got)
	require.Equal(t, sold, *got)
}

func TestStampSoldDateNoRestampOnSameStatus(t *testing.T) {
	sold := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := StampSoldDate(StatusDeliveredToCustomer, StatusDeliveredToCustomer, &sold, now)
	require.Equal(t, sold, *got)
}

func TestStampSoldDateRestampsOnReentry(t *testing.T) {
	sold := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := StampSoldDate(StatusRefunded, StatusDeliveredToCustomer, &sold, now)
	require.Equal(t, now, *got)
}

func TestStampSoldDateLegacySold(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := StampSoldDate(StatusLegacyAtPHWarehouse, StatusLegacySold, nil, now)
	require.NotNil(t, got)
	require.Equal(t, now, *got)
}

func TestResolveQCApprovedAutoAdvances(t *testing.T) {
	res := ResolveQC(StatusQCSent, catalog.QCApproved)
	require.NotNil(t, res.AutoStatus)
	require.Equal(t, StatusItemShipout, *res.AutoStatus)
	require.Empty(t, res.Choices)
}

func TestResolveQCApprovedElsewhereIsNoop(t *testing.T) {
	res := ResolveQC(StatusOrdered, catalog.QCApproved)
	require.Nil(t, res.AutoStatus)
	require.Empty(t, res.Choices)
}

func TestResolveQCRejectedOffersChoices(t *testing.T) {
	res := ResolveQC(StatusQCSent, catalog.QCRejected)
	require.Nil(t, res.AutoStatus)
	require.Equal(t, []Status{StatusOrdered, StatusRefunded}, res.Choices)
}

func TestResolveQCRejectedElsewhereIsNoop(t *testing.T) {
	for _, status := range []Status{StatusOrdered, StatusItemShipout, StatusArrivedPHWarehouse} {
		res := ResolveQC(status, catalog.QCRejected)
		require.Nil(t, res.AutoStatus)
		require.Empty(t, res.Choices)
	}
}

func TestResolveQCPendingIsNoop(t *testing.T) {
	res := ResolveQC(StatusQCSent, catalog.QCPendingReview)
	require.Nil(t, res.AutoStatus)
	require.Empty(t, res.Choices)
}

func TestStatusVocabulary(t *testing.T) {
	require.True(t, StatusDeliveredToCustomer.IsValid())
	require.True(t, StatusDeliveredToCustomer.IsWritable())
	require.True(t, StatusDeliveredToCustomer.IsTerminalSale())

	require.True(t, StatusLegacySold.IsValid())
	require.True(t, StatusLegacySold.IsLegacy())
	require.False(t, StatusLegacySold.IsWritable())
	require.True(t, StatusLegacySold.IsTerminalSale())

	require.False(t, Status("packed").IsValid())
	require.False(t, Status("packed").IsWritable())
}
