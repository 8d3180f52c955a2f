package personal

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

const itemColumns = `id, name, category, image_url, size, seller, seller_contact, batch,
	price_cny, exchange_rate_used, price_php,
	has_local_shipping, local_shipping_cny, local_shipping_php,
	qc_photo_ids, qc_status,
	weight_kg, is_branded, forwarder_rate_per_kg, forwarder_fee,
	is_forwarder_buy, forwarder_buy_rate_used, forwarder_buy_fee_php, qc_service_fee_php,
	total_cost, status, notes,
	order_date, created_at, updated_at`

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed personal-item repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM personal_items WHERE id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, id)
	}
	return item, err
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM personal_items WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filter.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		argCount++
		query += ` AND category = $` + strconv.Itoa(argCount)
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR seller ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filter.Search+"%")
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) Insert(ctx context.Context, item Item) error {
	query := `INSERT INTO personal_items (` + itemColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11,
		$12, $13, $14,
		$15, $16,
		$17, $18, $19, $20,
		$21, $22, $23, $24,
		$25, $26, $27,
		$28, $29, $30)`
	_, err := r.db.Exec(ctx, query, itemArgs(item)...)
	return err
}

func (r *postgresRepository) Update(ctx context.Context, item Item) error {
	query := `UPDATE personal_items SET
		name = $2, category = $3, image_url = $4, size = $5, seller = $6, seller_contact = $7, batch = $8,
		price_cny = $9, exchange_rate_used = $10, price_php = $11,
		has_local_shipping = $12, local_shipping_cny = $13, local_shipping_php = $14,
		qc_photo_ids = $15, qc_status = $16,
		weight_kg = $17, is_branded = $18, forwarder_rate_per_kg = $19, forwarder_fee = $20,
		is_forwarder_buy = $21, forwarder_buy_rate_used = $22, forwarder_buy_fee_php = $23, qc_service_fee_php = $24,
		total_cost = $25, status = $26, notes = $27,
		order_date = $28, created_at = $29, updated_at = $30
	WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, itemArgs(item)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, item.ID)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM personal_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: personal item %s", httpx.ErrNotFound, id)
	}
	return nil
}

func itemArgs(item Item) []interface{} {
	return []interface{}{
		item.ID, item.Name, item.Category, item.ImageURL, item.Size, item.Seller, item.SellerContact, item.Batch,
		item.PriceCNY, item.ExchangeRateUsed, item.PricePHP,
		item.HasLocalShipping, item.LocalShippingCNY, item.LocalShippingPHP,
		item.QCPhotoIDs, item.QCStatus,
		item.WeightKg, item.IsBranded, item.ForwarderRatePerKg, item.ForwarderFee,
		item.IsForwarderBuy, item.ForwarderBuyRateUsed, item.ForwarderBuyFeePHP, item.QCServiceFeePHP,
		item.TotalCost, item.Status, item.Notes,
		item.OrderDate, item.CreatedAt, item.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.ImageURL, &item.Size, &item.Seller, &item.SellerContact, &item.Batch,
		&item.PriceCNY, &item.ExchangeRateUsed, &item.PricePHP,
		&item.HasLocalShipping, &item.LocalShippingCNY, &item.LocalShippingPHP,
		&item.QCPhotoIDs, &item.QCStatus,
		&item.WeightKg, &item.IsBranded, &item.ForwarderRatePerKg, &item.ForwarderFee,
		&item.IsForwarderBuy, &item.ForwarderBuyRateUsed, &item.ForwarderBuyFeePHP, &item.QCServiceFeePHP,
		&item.TotalCost, &item.Status, &item.Notes,
		&item.OrderDate, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}
