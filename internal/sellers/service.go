package sellers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

// Repository abstracts seller persistence for the service.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (Seller, error)
	List(ctx context.Context, search string) ([]Seller, error)
	ListWithStats(ctx context.Context, search string) ([]SellerWithStats, error)
	Insert(ctx context.Context, seller Seller) error
	Update(ctx context.Context, seller Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service coordinates seller directory operations.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a new seller. Names are trimmed and must be unique.
func (s *Service) Create(ctx context.Context, req CreateSellerRequest) (Seller, error) {
	if err := s.validate.Struct(req); err != nil {
		return Seller{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	if !req.Platform.IsValid() {
		return Seller{}, fmt.Errorf("%w: unknown platform %q", httpx.ErrValidation, req.Platform)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Seller{}, fmt.Errorf("%w: seller name is required", httpx.ErrValidation)
	}

	now := s.now()
	seller := Seller{
		ID:          uuid.New(),
		Name:        name,
		Platform:    req.Platform,
		ContactInfo: req.ContactInfo,
		StoreLink:   req.StoreLink,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, seller); err != nil {
		return Seller{}, err
	}
	return seller, nil
}

// Get fetches one seller.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Seller, error) {
	return s.repo.Get(ctx, id)
}

// List returns sellers, optionally narrowed by a name or contact substring.
func (s *Service) List(ctx context.Context, search string) ([]Seller, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// ListWithStats returns sellers with their accumulated item figures.
func (s *Service) ListWithStats(ctx context.Context, search string) ([]SellerWithStats, error) {
	return s.repo.ListWithStats(ctx, strings.TrimSpace(search))
}

// Update merges a partial patch onto a seller.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSellerRequest) (Seller, error) {
	seller, err := s.repo.Get(ctx, id)
	if err != nil {
		return Seller{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Seller{}, fmt.Errorf("%w: seller name is required", httpx.ErrValidation)
		}
		seller.Name = name
	}
	if req.Platform != nil {
		if !req.Platform.IsValid() {
			return Seller{}, fmt.Errorf("%w: unknown platform %q", httpx.ErrValidation, *req.Platform)
		}
		seller.Platform = *req.Platform
	}
	if req.ContactInfo != nil {
		seller.ContactInfo = req.ContactInfo
	}
	if req.StoreLink != nil {
		seller.StoreLink = req.StoreLink
	}
	if req.Notes != nil {
		seller.Notes = req.Notes
	}
	seller.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, seller); err != nil {
		return Seller{}, err
	}
	return seller, nil
}

// Delete removes a seller from the directory. Items keep their seller name;
// the directory entry is only a contact card.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
