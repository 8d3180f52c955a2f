package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

// Repository abstracts settings persistence. The table holds at most one row.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) error
}

// Service manages the settings singleton.
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

// Get returns the current settings, initialising defaults on first use.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	current, err := s.repo.Get(ctx)
	if err == nil {
		return current, nil
	}
	return s.Initialize(ctx)
}

// Initialize writes the default settings if no row exists yet. Calling it
// repeatedly is safe and never overwrites an edited row.
func (s *Service) Initialize(ctx context.Context) (Settings, error) {
	if current, err := s.repo.Get(ctx); err == nil {
		return current, nil
	}
	defaults := Default(s.now())
	if err := s.repo.Upsert(ctx, defaults); err != nil {
		return Settings{}, fmt.Errorf("settings: initialize: %w", err)
	}
	return defaults, nil
}

// Update applies a partial patch to the singleton row.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error) {
	if err := s.validate.Struct(req); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	if req.CNYToPHPRate != nil {
		current.CNYToPHPRate = *req.CNYToPHPRate
	}
	if req.ForwarderBuyServiceRate != nil {
		current.ForwarderBuyServiceRate = *req.ForwarderBuyServiceRate
	}
	if req.DefaultForwarderRate != nil {
		current.DefaultForwarderRate = *req.DefaultForwarderRate
	}
	if req.MarkupMin != nil {
		current.MarkupMin = *req.MarkupMin
	}
	if req.MarkupMax != nil {
		current.MarkupMax = *req.MarkupMax
	}
	if current.MarkupMin > current.MarkupMax {
		return Settings{}, fmt.Errorf("%w: markup minimum cannot exceed maximum", httpx.ErrValidation)
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, current); err != nil {
		return Settings{}, fmt.Errorf("settings: update: %w", err)
	}
	return current, nil
}

// Snapshot returns the rates applied to new items, initialising defaults on
// first use.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return current.Snapshot(), nil
}
