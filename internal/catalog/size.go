package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

// Validation errors carry the violated rule so callers can surface it verbatim.
var (
	ErrShoesSize        = fmt.Errorf("%w: shoes must use a valid EU size", httpx.ErrValidation)
	ErrClothesSize      = fmt.Errorf("%w: clothes size must be S, M, L, or XL", httpx.ErrValidation)
	ErrForwarderBuyRate = fmt.Errorf("%w: forwarder buy service rate is required and must be greater than zero", httpx.ErrValidation)
)

var clothesSizes = map[string]struct{}{
	"S": {}, "M": {}, "L": {}, "XL": {},
}

// NormalizeSize canonicalises a raw size for the category: whitespace is
// trimmed, clothes sizes are uppercased, and watches/accessories never carry
// a size regardless of input. Returns nil for an absent size.
func NormalizeSize(category Category, size *string) *string {
	if size == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*size)
	if trimmed == "" {
		return nil
	}
	switch category {
	case CategoryClothes:
		trimmed = strings.ToUpper(trimmed)
	case CategoryWatchesAccessories:
		return nil
	}
	return &trimmed
}

// ValidateSize enforces the category-specific size rule on an already
// normalised size.
func ValidateSize(category Category, size *string) error {
	switch category {
	case CategoryShoes:
		if size == nil {
			return ErrShoesSize
		}
		parsed, err := strconv.ParseFloat(*size, 64)
		if err != nil || parsed <= 0 {
			return ErrShoesSize
		}
	case CategoryClothes:
		if size == nil {
			return ErrClothesSize
		}
		if _, ok := clothesSizes[*size]; !ok {
			return ErrClothesSize
		}
	case CategoryWatchesAccessories:
		// NormalizeSize already cleared it; nothing to check.
	}
	return nil
}

// ValidateForwarderBuy enforces that a forwarder-buy item carries a positive
// snapshot rate for the buy service.
func ValidateForwarderBuy(isForwarderBuy bool, rate *float64) error {
	if !isForwarderBuy {
		return nil
	}
	if rate == nil || *rate <= 0 {
		return ErrForwarderBuyRate
	}
	return nil
}
