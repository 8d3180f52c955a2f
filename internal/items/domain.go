// Package items tracks resale orders through the purchase, QC, shipping and
// sale pipeline, keeping derived monetary fields in lockstep with their
// pricing inputs.
package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/catalog"
)

// Status represents the position of an item in the fulfilment pipeline.
type Status string

// Current vocabulary. New writes only use these.
const (
	StatusOrdered             Status = "ordered"
	StatusQCSent              Status = "qc_sent"
	StatusItemShipout         Status = "item_shipout"
	StatusArrivedPHWarehouse  Status = "arrived_ph_warehouse"
	StatusDeliveredToCustomer Status = "delivered_to_customer"
	StatusRefunded            Status = "refunded"
)

// Legacy vocabulary. Kept so records written before the pipeline was
// shortened remain readable; never a valid target for new writes.
const (
	StatusLegacyShippedToWarehouse Status = "shipped_to_warehouse"
	StatusLegacyAtCNWarehouse      Status = "at_cn_warehouse"
	StatusLegacyShippedToPH        Status = "shipped_to_ph"
	StatusLegacyAtPHWarehouse      Status = "at_ph_warehouse"
	StatusLegacyDeliveredToMe      Status = "delivered_to_me"
	StatusLegacySold               Status = "sold"
	StatusLegacyCancelled          Status = "cancelled"
	StatusLegacyReturned           Status = "returned"
)

// StatusFlow is the ordered main pipeline; refunded branches off after a QC
// rejection and is not part of the linear flow.
var StatusFlow = []Status{
	StatusOrdered,
	StatusQCSent,
	StatusItemShipout,
	StatusArrivedPHWarehouse,
	StatusDeliveredToCustomer,
}

// IsValid reports whether the status belongs to either vocabulary.
func (s Status) IsValid() bool {
	return s.isCurrent() || s.IsLegacy()
}

func (s Status) isCurrent() bool {
	switch s {
	case StatusOrdered, StatusQCSent, StatusItemShipout,
		StatusArrivedPHWarehouse, StatusDeliveredToCustomer, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsLegacy reports whether the status comes from the retired vocabulary.
func (s Status) IsLegacy() bool {
	switch s {
	case StatusLegacyShippedToWarehouse, StatusLegacyAtCNWarehouse,
		StatusLegacyShippedToPH, StatusLegacyAtPHWarehouse,
		StatusLegacyDeliveredToMe, StatusLegacySold,
		StatusLegacyCancelled, StatusLegacyReturned:
		return true
	default:
		return false
	}
}

// IsWritable reports whether new writes may target this status.
func (s Status) IsWritable() bool {
	return s.isCurrent()
}

// IsTerminalSale reports whether the status marks the item as sold and
// delivered. Entering it stamps the sold date.
func (s Status) IsTerminalSale() bool {
	return s == StatusDeliveredToCustomer || s == StatusLegacySold
}

// Item is the central entity: one physical good bought from an overseas
// seller and moved through the pipeline towards a customer.
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

	SellingPrice *float64 `json:"sellingPrice,omitempty"`
	LalamoveFee  *float64 `json:"lalamoveFee,omitempty"`
	CustomerName *string  `json:"customerName,omitempty"`

	TotalCost float64  `json:"totalCost"`
	Profit    *float64 `json:"profit,omitempty"`

	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	OrderDate time.Time  `json:"orderDate"`
	SoldDate  *time.Time `json:"soldDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateItemRequest carries the raw inputs for a new item. Rate fields left
// nil are pre-filled from the settings snapshot passed to Create.
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

	SellingPrice *float64 `json:"sellingPrice,omitempty"`
	LalamoveFee  *float64 `json:"lalamoveFee,omitempty"`
	CustomerName *string  `json:"customerName,omitempty"`

	Status    Status    `json:"status" validate:"required"`
	Notes     *string   `json:"notes,omitempty"`
	OrderDate time.Time `json:"orderDate" validate:"required"`
}

// UpdateItemRequest is a partial patch merged onto the stored record before
// re-validation and re-derivation. Derived fields are never patchable.
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

	SellingPrice *float64 `json:"sellingPrice,omitempty"`
	LalamoveFee  *float64 `json:"lalamoveFee,omitempty"`
	CustomerName *string  `json:"customerName,omitempty"`

	Status    *Status    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	OrderDate *time.Time `json:"orderDate,omitempty"`
}

// UpdateStatusRequest moves a single item to a new pipeline status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// UpdateQCStatusRequest records a QC review outcome.
type UpdateQCStatusRequest struct {
	QCStatus catalog.QCStatus `json:"qcStatus" validate:"required"`
}

// BulkStatusRequest moves a set of items to the same status in one call.
type BulkStatusRequest struct {
	IDs    []uuid.UUID `json:"ids" validate:"required,min=1"`
	Status Status      `json:"status" validate:"required"`
}

// ListFilter narrows and orders a listing. Zero values mean "no filter".
type ListFilter struct {
	Status    Status
	Category  catalog.Category
	Seller    string
	QCStatus  catalog.QCStatus
	Search    string
	SortBy    string
	SortOrder string
}
