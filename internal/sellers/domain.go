// Package sellers manages the directory of sourcing contacts and the sales
// figures accumulated against each of them.
package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/catalog"
)

// Seller is one sourcing contact. Names are unique.
type Seller struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Platform    catalog.Platform `json:"platform"`
	ContactInfo *string          `json:"contactInfo,omitempty"`
	StoreLink   *string          `json:"storeLink,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Stats aggregates item outcomes attributed to a seller.
type Stats struct {
	TotalItems  int     `json:"totalItems"`
	ItemsSold   int     `json:"itemsSold"`
	TotalProfit float64 `json:"totalProfit"`
	AvgProfit   float64 `json:"avgProfit"`
	TotalSpent  float64 `json:"totalSpent"`
}

// SellerWithStats pairs the directory entry with its accumulated figures.
type SellerWithStats struct {
	Seller
	Stats Stats `json:"stats"`
}

// CreateSellerRequest adds a new directory entry.
type CreateSellerRequest struct {
	Name        string           `json:"name" validate:"required"`
	Platform    catalog.Platform `json:"platform" validate:"required"`
	ContactInfo *string          `json:"contactInfo,omitempty"`
	StoreLink   *string          `json:"storeLink,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// UpdateSellerRequest is a partial patch on a directory entry.
type UpdateSellerRequest struct {
	Name        *string           `json:"name,omitempty"`
	Platform    *catalog.Platform `json:"platform,omitempty"`
	ContactInfo *string           `json:"contactInfo,omitempty"`
	StoreLink   *string           `json:"storeLink,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
}
