package items

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasalo-app/pasalo/internal/platform/db"
	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

const itemColumns = `id, name, category, image_url, size, seller, seller_contact, batch,
	price_cny, exchange_rate_used, price_php,
	has_local_shipping, local_shipping_cny, local_shipping_php,
	qc_photo_ids, qc_status,
	weight_kg, is_branded, forwarder_rate_per_kg, forwarder_fee,
	is_forwarder_buy, forwarder_buy_rate_used, forwarder_buy_fee_php, qc_service_fee_php,
	selling_price, lalamove_fee, customer_name,
	total_cost, profit, status, notes,
	order_date, sold_date, created_at, updated_at`

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed item repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: item %s", httpx.ErrNotFound, id)
	}
	return item, err
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
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
	if filter.Seller != "" {
		argCount++
		query += ` AND seller = $` + strconv.Itoa(argCount)
		args = append(args, filter.Seller)
	}
	if filter.QCStatus != "" {
		argCount++
		query += ` AND qc_status = $` + strconv.Itoa(argCount)
		args = append(args, filter.QCStatus)
	}
	if filter.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR seller ILIKE $` + strconv.Itoa(argCount) + ` OR customer_name ILIKE $` + strconv.Itoa(argCount) + ` OR batch ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filter.Search+"%")
	}

	query += " ORDER BY " + sortOrder(filter.SortBy, filter.SortOrder)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *postgresRepository) Recent(ctx context.Context, limit int) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *postgresRepository) Insert(ctx context.Context, item Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11,
		$12, $13, $14,
		$15, $16,
		$17, $18, $19, $20,
		$21, $22, $23, $24,
		$25, $26, $27,
		$28, $29, $30, $31,
		$32, $33, $34, $35)`
	_, err := r.db.Exec(ctx, query, itemArgs(item)...)
	return err
}

const updateItemQuery = `UPDATE items SET
	name = $2, category = $3, image_url = $4, size = $5, seller = $6, seller_contact = $7, batch = $8,
	price_cny = $9, exchange_rate_used = $10, price_php = $11,
	has_local_shipping = $12, local_shipping_cny = $13, local_shipping_php = $14,
	qc_photo_ids = $15, qc_status = $16,
	weight_kg = $17, is_branded = $18, forwarder_rate_per_kg = $19, forwarder_fee = $20,
	is_forwarder_buy = $21, forwarder_buy_rate_used = $22, forwarder_buy_fee_php = $23, qc_service_fee_php = $24,
	selling_price = $25, lalamove_fee = $26, customer_name = $27,
	total_cost = $28, profit = $29, status = $30, notes = $31,
	order_date = $32, sold_date = $33, created_at = $34, updated_at = $35
WHERE id = $1`

func (r *postgresRepository) Update(ctx context.Context, item Item) error {
	tag, err := r.db.Exec(ctx, updateItemQuery, itemArgs(item)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", httpx.ErrNotFound, item.ID)
	}
	return nil
}

// UpdateMany writes a batch of items inside one transaction. Rows deleted
// since the caller read them are skipped rather than failing the batch.
func (r *postgresRepository) UpdateMany(ctx context.Context, items []Item) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, item := range items {
			if _, err := tx.Exec(ctx, updateItemQuery, itemArgs(item)...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", httpx.ErrNotFound, id)
	}
	return nil
}

func (r *postgresRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM items GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func itemArgs(item Item) []interface{} {
	return []interface{}{
		item.ID, item.Name, item.Category, item.ImageURL, item.Size, item.Seller, item.SellerContact, item.Batch,
		item.PriceCNY, item.ExchangeRateUsed, item.PricePHP,
		item.HasLocalShipping, item.LocalShippingCNY, item.LocalShippingPHP,
		item.QCPhotoIDs, item.QCStatus,
		item.WeightKg, item.IsBranded, item.ForwarderRatePerKg, item.ForwarderFee,
		item.IsForwarderBuy, item.ForwarderBuyRateUsed, item.ForwarderBuyFeePHP, item.QCServiceFeePHP,
		item.SellingPrice, item.LalamoveFee, item.CustomerName,
		item.TotalCost, item.Profit, item.Status, item.Notes,
		item.OrderDate, item.SoldDate, item.CreatedAt, item.UpdatedAt,
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
		&item.SellingPrice, &item.LalamoveFee, &item.CustomerName,
		&item.TotalCost, &item.Profit, &item.Status, &item.Notes,
		&item.OrderDate, &item.SoldDate, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

func collectItems(rows pgx.Rows) ([]Item, error) {
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

func sortOrder(sortBy, sortDir string) string {
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "order_date":
		return "order_date " + dir
	case "sold_date":
		return "sold_date " + dir + " NULLS LAST"
	case "total_cost":
		return "total_cost " + dir
	case "profit":
		return "profit " + dir + " NULLS LAST"
	default:
		return "created_at " + dir
	}
}
