package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/catalog"
	"github.com/pasalo-app/pasalo/internal/costing"
	"github.com/pasalo-app/pasalo/internal/platform/httpx"
	"github.com/pasalo-app/pasalo/internal/settings"
)

// Repository abstracts item persistence for the service.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (Item, error)
	List(ctx context.Context, filter ListFilter) ([]Item, error)
	Recent(ctx context.Context, limit int) ([]Item, error)
	Insert(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	UpdateMany(ctx context.Context, items []Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// SettingsPort supplies the rate snapshot applied to new items.
type SettingsPort interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

// CacheBumper invalidates cached analytics after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service coordinates item lifecycle operations.
type Service struct {
	repo     Repository
	settings SettingsPort
	cache    CacheBumper
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service.
func NewService(repo Repository, settingsPort SettingsPort, cache CacheBumper) *Service {
	return &Service{
		repo:     repo,
		settings: settingsPort,
		cache:    cache,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and derives a new item, snapshotting the current settings
// for any rate the request leaves unset.
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Category.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, req.Category)
	}
	if !req.Status.IsWritable() {
		return Item{}, fmt.Errorf("%w: status %q is not accepted for new items", httpx.ErrValidation, req.Status)
	}
	if !req.QCStatus.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown qc status %q", httpx.ErrValidation, req.QCStatus)
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("items: load settings snapshot: %w", err)
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
		SellingPrice:         req.SellingPrice,
		LalamoveFee:          req.LalamoveFee,
		CustomerName:         req.CustomerName,
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
	item.SoldDate = StampSoldDate("", item.Status, nil, now)

	if err := s.repo.Insert(ctx, item); err != nil {
		return Item{}, fmt.Errorf("items: insert: %w", err)
	}
	s.bump(ctx)
	return item, nil
}

// Get fetches one item.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns items matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Item, error) {
	return s.repo.List(ctx, filter)
}

// Recent returns the most recently created items.
func (s *Service) Recent(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.Recent(ctx, limit)
}

// CountByStatus returns how many items sit at each pipeline status.
func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}

// Update merges a partial patch onto the stored record, re-validates it and
// re-derives every monetary field. Derived fields in the patch are ignored by
// construction: the request type has no slots for them.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	prevStatus := item.Status

	applyPatch(&item, req)

	if !item.Category.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, item.Category)
	}
	if req.Status != nil && !req.Status.IsWritable() {
		return Item{}, fmt.Errorf("%w: status %q is not accepted for writes", httpx.ErrValidation, *req.Status)
	}
	if req.QCStatus != nil && !req.QCStatus.IsValid() {
		return Item{}, fmt.Errorf("%w: unknown qc status %q", httpx.ErrValidation, *req.QCStatus)
	}

	// Turning the buy service off clears its snapshot rate so the derived
	// fees disappear with it.
	if !item.IsForwarderBuy {
		item.ForwarderBuyRateUsed = nil
	}

	if err := s.normalizeAndDerive(&item); err != nil {
		return Item{}, err
	}

	now := s.now()
	item.SoldDate = StampSoldDate(prevStatus, item.Status, item.SoldDate, now)
	item.UpdatedAt = now

	if err := s.repo.Update(ctx, item); err != nil {
		return Item{}, fmt.Errorf("items: update: %w", err)
	}
	s.bump(ctx)
	return item, nil
}

// UpdateStatus moves one item to a new pipeline status, stamping the sold
// date when the move enters a terminal sale status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return Item{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Status.IsWritable() {
		return Item{}, fmt.Errorf("%w: status %q is not accepted for writes", httpx.ErrValidation, req.Status)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	now := s.now()
	item.SoldDate = StampSoldDate(item.Status, req.Status, item.SoldDate, now)
	item.Status = req.Status
	item.UpdatedAt = now

	if err := s.repo.Update(ctx, item); err != nil {
		return Item{}, fmt.Errorf("items: update status: %w", err)
	}
	s.bump(ctx)
	return item, nil
}

// QCOutcome is the result of recording a QC review: the updated item plus the
// statuses the operator may still choose from when the review rejected the
// item.
type QCOutcome struct {
	Item    Item     `json:"item"`
	Choices []Status `json:"choices,omitempty"`
}

// UpdateQCStatus records a QC review outcome. A pass while the item awaits QC
// advances it to shipout automatically; a rejection returns the valid next
// statuses for the operator to choose from.
func (s *Service) UpdateQCStatus(ctx context.Context, id uuid.UUID, req UpdateQCStatusRequest) (QCOutcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return QCOutcome{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.QCStatus.IsValid() {
		return QCOutcome{}, fmt.Errorf("%w: unknown qc status %q", httpx.ErrValidation, req.QCStatus)
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return QCOutcome{}, err
	}

	now := s.now()
	item.QCStatus = req.QCStatus
	item.UpdatedAt = now

	res := ResolveQC(item.Status, req.QCStatus)
	if res.AutoStatus != nil {
		item.SoldDate = StampSoldDate(item.Status, *res.AutoStatus, item.SoldDate, now)
		item.Status = *res.AutoStatus
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return QCOutcome{}, fmt.Errorf("items: update qc status: %w", err)
	}
	s.bump(ctx)
	return QCOutcome{Item: item, Choices: res.Choices}, nil
}

// BulkUpdateStatus moves a set of items to the same status in one atomic
// write. All stamped sold dates share one timestamp; ids that no longer exist
// are skipped.
func (s *Service) BulkUpdateStatus(ctx context.Context, req BulkStatusRequest) ([]Item, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Status.IsWritable() {
		return nil, fmt.Errorf("%w: status %q is not accepted for writes", httpx.ErrValidation, req.Status)
	}

	now := s.now()
	updated := make([]Item, 0, len(req.IDs))
	for _, id := range req.IDs {
		item, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				continue
			}
			return nil, err
		}
		item.SoldDate = StampSoldDate(item.Status, req.Status, item.SoldDate, now)
		item.Status = req.Status
		item.UpdatedAt = now
		updated = append(updated, item)
	}
	if len(updated) == 0 {
		return updated, nil
	}
	if err := s.repo.UpdateMany(ctx, updated); err != nil {
		return nil, fmt.Errorf("items: bulk update: %w", err)
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes an item permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// normalizeAndDerive applies the category size rules and recomputes every
// derived monetary field from the current inputs.
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
		LalamoveFee:          item.LalamoveFee,
		SellingPrice:         item.SellingPrice,
	})
	item.PricePHP = derived.PricePHP
	item.LocalShippingPHP = derived.LocalShippingPHP
	item.ForwarderFee = derived.ForwarderFee
	item.ForwarderBuyFeePHP = derived.ForwarderBuyFeePHP
	item.QCServiceFeePHP = derived.QCServiceFeePHP
	item.TotalCost = derived.TotalCost
	item.Profit = derived.Profit
	return nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Bump(ctx)
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
	if req.SellingPrice != nil {
		item.SellingPrice = req.SellingPrice
	}
	if req.LalamoveFee != nil {
		item.LalamoveFee = req.LalamoveFee
	}
	if req.CustomerName != nil {
		item.CustomerName = req.CustomerName
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
