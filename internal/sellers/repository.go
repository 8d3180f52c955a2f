package sellers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

const sellerColumns = `id, name, platform, contact_info, store_link, notes, created_at, updated_at`

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed seller repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1`
	var s Seller
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Platform, &s.ContactInfo, &s.StoreLink, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Seller{}, fmt.Errorf("%w: seller %s", httpx.ErrNotFound, id)
	}
	return s, err
}

func (r *postgresRepository) List(ctx context.Context, search string) ([]Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers`
	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR contact_info ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []Seller
	for rows.Next() {
		var s Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Platform, &s.ContactInfo, &s.StoreLink, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *postgresRepository) ListWithStats(ctx context.Context, search string) ([]SellerWithStats, error) {
	query := `SELECT s.id, s.name, s.platform, s.contact_info, s.store_link, s.notes, s.created_at, s.updated_at,
		COUNT(i.id) AS total_items,
		COUNT(i.id) FILTER (WHERE i.status IN ('delivered_to_customer', 'sold')) AS items_sold,
		COALESCE(SUM(i.profit) FILTER (WHERE i.status IN ('delivered_to_customer', 'sold')), 0) AS total_profit,
		COALESCE(AVG(i.profit) FILTER (WHERE i.status IN ('delivered_to_customer', 'sold')), 0) AS avg_profit,
		COALESCE(SUM(i.total_cost), 0) AS total_spent
	FROM sellers s
	LEFT JOIN items i ON i.seller = s.name`
	var args []interface{}
	if search != "" {
		query += ` WHERE s.name ILIKE $1 OR s.contact_info ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += `
	GROUP BY s.id
	ORDER BY s.name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []SellerWithStats
	for rows.Next() {
		var s SellerWithStats
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Platform, &s.ContactInfo, &s.StoreLink, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&s.Stats.TotalItems, &s.Stats.ItemsSold, &s.Stats.TotalProfit, &s.Stats.AvgProfit, &s.Stats.TotalSpent,
		); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *postgresRepository) Insert(ctx context.Context, seller Seller) error {
	query := `INSERT INTO sellers (` + sellerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		seller.ID, seller.Name, seller.Platform, seller.ContactInfo, seller.StoreLink, seller.Notes, seller.CreatedAt, seller.UpdatedAt,
	)
	return mapUniqueViolation(err, seller.Name)
}

func (r *postgresRepository) Update(ctx context.Context, seller Seller) error {
	query := `UPDATE sellers SET name = $2, platform = $3, contact_info = $4, store_link = $5, notes = $6, updated_at = $7 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		seller.ID, seller.Name, seller.Platform, seller.ContactInfo, seller.StoreLink, seller.Notes, seller.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err, seller.Name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: seller %s", httpx.ErrNotFound, seller.ID)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: seller %s", httpx.ErrNotFound, id)
	}
	return nil
}

func mapUniqueViolation(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: seller %q already exists", httpx.ErrDuplicate, name)
	}
	return err
}
