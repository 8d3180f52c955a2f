// Package personal tracks items bought for personal use. They share the
// purchase and shipping pipeline with resale items but never carry selling,
// customer or sold-date fields.
package personal

import (
	"time"

	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/catalog"
)

// Status is the personal-item pipeline. It ends at delivery to the owner and
// has no sale or refund branch, only a cancellation.
type Status string

const (
	StatusOrdered            Status = "ordered"
	StatusQCSent             Status = "qc_sent"
	StatusItemShipout        Status = "item_shipout"
	StatusArrivedPHWarehouse Status = "arrived_ph_warehouse"
	StatusDeliveredToMe      Status = "delivered_to_me"
	StatusCancelled          Status = "cancelled"
)

// IsValid reports whether the status is known.
func (s Status) IsValid() bool {
	switch s {
	case StatusOrdered, StatusQCSent, StatusItemShipout,
		StatusArrivedPHWarehouse, StatusDeliveredToMe, StatusCancelled:
		return true
	default:
		return false
	}
}

// Item is one personal purchase moving through the pipeline.
type Item struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
	ImageURL *string          `json:"imageUrl,omitempty"`
	Size     *string          `json:"size,omitempty"`

	Seller        string  `json:"seller"`
	SellerContact *string `json:"sellerContact,omitempty"`
	Batch         *string `json:"batch,omitempty"`

	PriceCNY         float64 `json:"priceCNY"`
	ExchangeRateUsed float64 `json:"exchangeRateUsed"`
	PricePHP         float64 `json:"pricePHP"`

	HasLocalShipping bool     `json:"hasLocalShipping"`
	LocalShippingCNY *float64 `json:"localShippingCNY,omitempty"`
	LocalShippingPHP *float64 `json:"localShippingPHP,omitempty"`

	QCPhotoIDs []string         `json:"qcPhotoIds,omitempty"`
	QCStatus   catalog.QCStatus `json:"qcStatus"`

	WeightKg             *float64 `json:"weightKg,omitempty"`
	IsBranded            bool     `json:"isBranded"`
	ForwarderRatePerKg   float64  `json:"forwarderRatePerKg"`
	ForwarderFee         *float64 `json:"forwarderFee,omitempty"`
	IsForwarderBuy       bool     `json:"isForwarderBuy"`
	ForwarderBuyRateUsed *float64 `json:"forwarderBuyRateUsed,omitempty"`
	ForwarderBuyFeePHP   *float64 `json:"forwarderBuyFeePHP,omitempty"`
	QCServiceFeePHP      *float64 `json:"qcServiceFeePHP,omitempty"`

	TotalCost float64 `json:"totalCost"`

	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	OrderDate time.Time `json:"orderDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateItemRequest carries the raw inputs for a new personal item.
type CreateItemRequest struct {
	Name     string           `json:"name" validate:"required"`
	Category catalog.Category `json:"category" validate:"required"`
	ImageURL *string          `json:"imageUrl,omitempty"`
	Size     *string          `json:"size,omitempty"`

	Seller        string  `json:"seller" validate:"required"`
	SellerContact *string `json:"sellerContact,omitempty"`
	Batch         *string `json:"batch,omitempty"`

	PriceCNY         float64  `json:"priceCNY" validate:"required,gt=0"`
	ExchangeRateUsed *float64 `json:"exchangeRateUsed,omitempty" validate:"omitempty,gt=0"`

	HasLocalShipping bool     `json:"hasLocalShipping"`
	LocalShippingCNY *float64 `json:"localShippingCNY,omitempty"`

	QCPhotoIDs []string         `json:"qcPhotoIds,omitempty"`
	QCStatus   catalog.QCStatus `json:"qcStatus" validate:"required"`

	WeightKg             *float64 `json:"weightKg,omitempty"`
	IsBranded            bool     `json:"isBranded"`
	ForwarderRatePerKg   *float64 `json:"forwarderRatePerKg,omitempty" validate:"omitempty,gt=0"`
	IsForwarderBuy       bool     `json:"isForwarderBuy"`
	ForwarderBuyRateUsed *float64 `json:"forwarderBuyRateUsed,omitempty"`

	Status    Status    `json:"status" validate:"required"`
	Notes     *string   `json:"notes,omitempty"`
	OrderDate time.Time `json:"orderDate" validate:"required"`
}

// UpdateItemRequest is a partial patch merged onto the stored record.
type UpdateItemRequest struct {
	Name     *string           `json:"name,omitempty"`
	Category *catalog.Category `json:"category,omitempty"`
	ImageURL *string           `json:"imageUrl,omitempty"`
	Size     *string           `json:"size,omitempty"`

	Seller        *string `json:"seller,omitempty"`
	SellerContact *string `json:"sellerContact,omitempty"`
	Batch         *string `json:"batch,omitempty"`

	PriceCNY         *float64 `json:"priceCNY,omitempty" validate:"omitempty,gt=0"`
	ExchangeRateUsed *float64 `json:"exchangeRateUsed,omitempty" validate:"omitempty,gt=0"`

	HasLocalShipping *bool    `json:"hasLocalShipping,omitempty"`
	LocalShippingCNY *float64 `json:"localShippingCNY,omitempty"`

	QCPhotoIDs []string          `json:"qcPhotoIds,omitempty"`
	QCStatus   *catalog.QCStatus `json:"qcStatus,omitempty"`

	WeightKg             *float64 `json:"weightKg,omitempty"`
	IsBranded            *bool    `json:"isBranded,omitempty"`
	ForwarderRatePerKg   *float64 `json:"forwarderRatePerKg,omitempty" validate:"omitempty,gt=0"`
	IsForwarderBuy       *bool    `json:"isForwarderBuy,omitempty"`
	ForwarderBuyRateUsed *float64 `json:"forwarderBuyRateUsed,omitempty"`

	Status    *Status    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	OrderDate *time.Time `json:"orderDate,omitempty"`
}

// UpdateStatusRequest moves a personal item to a new status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// ListFilter narrows a listing. Zero values mean "no filter".
type ListFilter struct {
	Status   Status
	Category catalog.Category
	Search   string
}
