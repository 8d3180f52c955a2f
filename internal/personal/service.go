package personal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/catalog"
	"github.com/pasalo-app/pasalo/internal/costing"
	"github.com/pasalo-app/pasalo/internal/platform/httpx"
	"github.com/pasalo-app/pasalo/internal/settings"
)

// Repository abstracts personal-item persistence for the service.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (Item, error)
	List(ctx context.Context, filter ListFilter) ([]Item, error)
	Insert(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsPort supplies the rate snapshot applied to new items.
type SettingsPort interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

// Service coordinates personal-item operations.
type Service struct {
	repo     Repository
	settings SettingsPort
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service.
func NewService(repo Repository, settingsPort SettingsPort) *Service {
	return &Service{
		repo:     repo,
		settings: settingsPort,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and derives a new personal item.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Category.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, req.Category)
	}
	if !req.Status.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}
	if !req.QCStatus.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown qc status %q", httpx.ErrValidation, req.QCStatus)
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("personal: load settings snapshot: %w", err)
	}

	now := s.now()
	item := Item{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Category:             req.Category,
		ImageURL:             req.ImageURL,
		Size:                 catalog.NormalizeSize(req.Category, req.Size),
		Seller:               req.Seller,
		SellerContact:        req.SellerContact,
		Batch:                req.Batch,
		PriceCNY:             req.PriceCNY,
		ExchangeRateUsed:     snap.CNYToPHPRate,
		HasLocalShipping:     req.HasLocalShipping,
		LocalShippingCNY:     req.LocalShippingCNY,
		QCPhotoIDs:           req.QCPhotoIDs,
		QCStatus:             req.QCStatus,
		WeightKg:             req.WeightKg,
		IsBranded:            req.IsBranded,
		ForwarderRatePerKg:   snap.DefaultForwarderRate,
		IsForwarderBuy:       req.IsForwarderBuy,
		ForwarderBuyRateUsed: req.ForwarderBuyRateUsed,
		Status:               req.Status,
		Notes:                req.Notes,
		OrderDate:            req.OrderDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.ExchangeRateUsed != nil {
		item.ExchangeRateUsed = *req.ExchangeRateUsed
	}
	if req.ForwarderRatePerKg != nil {
		item.ForwarderRatePerKg = *req.ForwarderRatePerKg
	}
	if item.IsForwarderBuy && item.ForwarderBuyRateUsed == nil {
		rate := snap.ForwarderBuyServiceRate
		item.ForwarderBuyRateUsed = &rate
	}

	if err := s.normalizeAndDerive(&item); err != nil {
		return Item{}, err
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, fmt.Errorf("personal: insert: %w", err)
	}
	return item, nil
}

// Get fetches one personal item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns personal items matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Item, error) {
	return s.repo.List(ctx, filter)
}

// Update merges a partial patch onto the stored record and re-derives the
// monetary fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	applyPatch(&item, req)

	if !item.Category.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, item.Category)
	}
	if req.Status != nil && !req.Status.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, *req.Status)
	}
	if req.QCStatus != nil && !req.QCStatus.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown qc status %q", httpx.ErrValidation, *req.QCStatus)
	}

	if !item.IsForwarderBuy {
		item.ForwarderBuyRateUsed = nil
	}

	if err := s.normalizeAndDerive(&item); err != nil {
		return Item{}, err
	}
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return Item{}, fmt.Errorf("personal: update: %w", err)
	}
	return item, nil
}

// UpdateStatus moves one personal item to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Status.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, req.Status)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	item.Status = req.Status
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return Item{}, fmt.Errorf("personal: update status: %w", err)
	}
	return item, nil
}

// Delete removes a personal item permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) normalizeAndDerive(item *Item) error {
	item.Size = catalog.NormalizeSize(item.Category, item.Size)
	if err := catalog.ValidateSize(item.Category, item.Size); err != nil {
		return err
	}
	if err := catalog.ValidateForwarderBuy(item.IsForwarderBuy, item.ForwarderBuyRateUsed); err != nil {
		return err
	}

	derived := costing.Compute(costing.Inputs{
		PriceCNY:             item.PriceCNY,
		ExchangeRateUsed:     item.ExchangeRateUsed,
		HasLocalShipping:     item.HasLocalShipping,
		LocalShippingCNY:     item.LocalShippingCNY,
		WeightKg:             item.WeightKg,
		ForwarderRatePerKg:   item.ForwarderRatePerKg,
		IsForwarderBuy:       item.IsForwarderBuy,
		ForwarderBuyRateUsed: item.ForwarderBuyRateUsed,
	})
	item.PricePHP = derived.PricePHP
	item.LocalShippingPHP = derived.LocalShippingPHP
	item.ForwarderFee = derived.ForwarderFee
	item.ForwarderBuyFeePHP = derived.ForwarderBuyFeePHP
	item.QCServiceFeePHP = derived.QCServiceFeePHP
	item.TotalCost = derived.TotalCost
	return nil
}

func applyPatch(item *Item, req UpdateItemRequest) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Size != nil {
		item.Size = req.Size
	}
	if req.Seller != nil {
		item.Seller = *req.Seller
	}
	if req.SellerContact != nil {
		item.SellerContact = req.SellerContact
	}
	if req.Batch != nil {
		item.Batch = req.Batch
	}
	if req.PriceCNY != nil {
		item.PriceCNY = *req.PriceCNY
	}
	if req.ExchangeRateUsed != nil {
		item.ExchangeRateUsed = *req.ExchangeRateUsed
	}
	if req.HasLocalShipping != nil {
		item.HasLocalShipping = *req.HasLocalShipping
	}
	if req.LocalShippingCNY != nil {
		item.LocalShippingCNY = req.LocalShippingCNY
	}
	if req.QCPhotoIDs != nil {
		item.QCPhotoIDs = req.QCPhotoIDs
	}
	if req.QCStatus != nil {
		item.QCStatus = *req.QCStatus
	}
	if req.WeightKg != nil {
		item.WeightKg = req.WeightKg
	}
	if req.IsBranded != nil {
		item.IsBranded = *req.IsBranded
	}
	if req.ForwarderRatePerKg != nil {
		item.ForwarderRatePerKg = *req.ForwarderRatePerKg
	}
	if req.IsForwarderBuy != nil {
		item.IsForwarderBuy = *req.IsForwarderBuy
	}
	if req.ForwarderBuyRateUsed != nil {
		item.ForwarderBuyRateUsed = req.ForwarderBuyRateUsed
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.OrderDate != nil {
		item.OrderDate = *req.OrderDate
	}
}
