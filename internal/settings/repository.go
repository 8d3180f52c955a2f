package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed settings repository. A fixed primary
// key keeps the table at a single row.
func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context) (Settings, error) {
	query := `SELECT cny_to_php_rate, forwarder_buy_service_rate, default_forwarder_rate, markup_min, markup_max, updated_at
	FROM settings WHERE id = 1`
	var s Settings
	err := r.db.QueryRow(ctx, query).Scan(
		&s.CNYToPHPRate, &s.ForwarderBuyServiceRate, &s.DefaultForwarderRate, &s.MarkupMin, &s.MarkupMax, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, fmt.Errorf("%w: settings not initialised", httpx.ErrNotFound)
	}
	return s, err
}

func (r *postgresRepository) Upsert(ctx context.Context, s Settings) error {
	query := `INSERT INTO settings (id, cny_to_php_rate, forwarder_buy_service_rate, default_forwarder_rate, markup_min, markup_max, updated_at)
	VALUES (1, $1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		cny_to_php_rate = EXCLUDED.cny_to_php_rate,
		forwarder_buy_service_rate = EXCLUDED.forwarder_buy_service_rate,
		default_forwarder_rate = EXCLUDED.default_forwarder_rate,
		markup_min = EXCLUDED.markup_min,
		markup_max = EXCLUDED.markup_max,
		updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		s.CNYToPHPRate, s.ForwarderBuyServiceRate, s.DefaultForwarderRate, s.MarkupMin, s.MarkupMax, s.UpdatedAt,
	)
	return err
}
