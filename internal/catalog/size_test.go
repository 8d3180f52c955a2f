package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

func s(v string) *string {
	return &v
}

func TestNormalizeSize(t *testing.T) {
	require.Nil(t, NormalizeSize(CategoryShoes, nil))
	require.Nil(t, NormalizeSize(CategoryShoes, s("   ")))
	require.Equal(t, "42.5", *NormalizeSize(CategoryShoes, s(" 42.5 ")))
	require.Equal(t, "M", *NormalizeSize(CategoryClothes, s("m")))
	require.Equal(t, "XL", *NormalizeSize(CategoryClothes, s(" xl")))
	require.Nil(t, NormalizeSize(CategoryWatchesAccessories, s("40mm")))
}

func TestValidateSizeShoes(t *testing.T) {
	require.NoError(t, ValidateSize(CategoryShoes, s("42.5")))
	require.NoError(t, ValidateSize(CategoryShoes, s("38")))
	require.ErrorIs(t, ValidateSize(CategoryShoes, s("abc")), ErrShoesSize)
	require.ErrorIs(t, ValidateSize(CategoryShoes, s("-5")), ErrShoesSize)
	require.ErrorIs(t, ValidateSize(CategoryShoes, s("0")), ErrShoesSize)
	require.ErrorIs(t, ValidateSize(CategoryShoes, nil), ErrShoesSize)
}

func TestValidateSizeClothes(t *testing.T) {
	for _, valid := range []string{"S", "M", "L", "XL"} {
		require.NoError(t, ValidateSize(CategoryClothes, s(valid)))
	}
	require.ErrorIs(t, ValidateSize(CategoryClothes, s("XXL")), ErrClothesSize)
	require.ErrorIs(t, ValidateSize(CategoryClothes, nil), ErrClothesSize)
}

func TestValidateSizeWatches(t *testing.T) {
	require.NoError(t, ValidateSize(CategoryWatchesAccessories, nil))
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	require.ErrorIs(t, ValidateSize(CategoryShoes, nil), httpx.ErrValidation)
	require.ErrorIs(t, ValidateForwarderBuy(true, nil), httpx.ErrValidation)
}

func TestValidateForwarderBuy(t *testing.T) {
	rate := 8.6
	zero := 0.0
	require.NoError(t, ValidateForwarderBuy(false, nil))
	require.NoError(t, ValidateForwarderBuy(true, &rate))
	require.ErrorIs(t, ValidateForwarderBuy(true, nil), ErrForwarderBuyRate)
	require.ErrorIs(t, ValidateForwarderBuy(true, &zero), ErrForwarderBuyRate)
}
