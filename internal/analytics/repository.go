package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository answers the aggregation queries behind each dashboard panel.
type Repository interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	MonthlyProfit(ctx context.Context) ([]MonthlyProfit, error)
	ProfitByCategory(ctx context.Context) ([]CategoryProfit, error)
	ProfitBySeller(ctx context.Context) ([]SellerProfit, error)
	CostBreakdown(ctx context.Context) (CostBreakdown, error)
	TopBatches(ctx context.Context, limit int) ([]BatchStats, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerStats, error)
	ProfitDistribution(ctx context.Context) ([]ProfitBucket, error)
	CumulativeProfit(ctx context.Context) ([]CumulativePoint, error)
	ItemsSoldByMonth(ctx context.Context) ([]MonthCount, error)
}

const (
	soldFilter          = `status IN ('delivered_to_customer', 'sold')`
	pipelineFilter      = `status NOT IN ('delivered_to_customer', 'sold', 'refunded', 'cancelled', 'returned')`
	soldThisMonthFilter = soldFilter + ` AND sold_date >= date_trunc('month', now())`
)

type postgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed analytics repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Dashboard(ctx context.Context) (DashboardStats, error) {
	query := `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE ` + soldFilter + `),
		COUNT(*) FILTER (WHERE ` + pipelineFilter + `),
		COALESCE(SUM(total_cost), 0),
		COALESCE(SUM(selling_price) FILTER (WHERE ` + soldFilter + `), 0),
		COALESCE(SUM(profit) FILTER (WHERE ` + soldFilter + `), 0),
		COUNT(*) FILTER (WHERE ` + soldThisMonthFilter + `),
		COALESCE(SUM(selling_price) FILTER (WHERE ` + soldThisMonthFilter + `), 0),
		COALESCE(SUM(profit) FILTER (WHERE ` + soldThisMonthFilter + `), 0)
	FROM items`

	var stats DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalItems, &stats.ItemsSold, &stats.ItemsInPipeline,
		&stats.TotalInvested, &stats.TotalRevenue, &stats.TotalProfit,
		&stats.SoldThisMonth, &stats.RevenueThisMonth, &stats.ProfitThisMonth,
	)
	if err != nil {
		return DashboardStats{}, err
	}
	if stats.ItemsSold > 0 {
		stats.AvgProfitPerItem = stats.TotalProfit / float64(stats.ItemsSold)
	}
	if stats.SoldThisMonth > 0 {
		stats.AvgProfitThisMonth = stats.ProfitThisMonth / float64(stats.SoldThisMonth)
	}
	return stats, nil
}

func (r *postgresRepository) MonthlyProfit(ctx context.Context) ([]MonthlyProfit, error) {
	query := `SELECT to_char(sold_date, 'YYYY-MM') AS month,
		COALESCE(SUM(profit), 0),
		COALESCE(SUM(selling_price), 0),
		COUNT(*)
	FROM items
	WHERE ` + soldFilter + ` AND sold_date IS NOT NULL
	GROUP BY month
	ORDER BY month`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyProfit
	for rows.Next() {
		var m MonthlyProfit
		if err := rows.Scan(&m.Month, &m.Profit, &m.Revenue, &m.ItemsSold); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ProfitByCategory(ctx context.Context) ([]CategoryProfit, error) {
	query := `SELECT category, COALESCE(SUM(profit), 0), COALESCE(SUM(selling_price), 0), COUNT(*)
	FROM items
	WHERE ` + soldFilter + `
	GROUP BY category
	ORDER BY 2 DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryProfit
	for rows.Next() {
		var c CategoryProfit
		if err := rows.Scan(&c.Category, &c.Profit, &c.Revenue, &c.ItemsSold); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ProfitBySeller(ctx context.Context) ([]SellerProfit, error) {
	query := `SELECT seller, COALESCE(SUM(profit), 0), COALESCE(SUM(selling_price), 0), COUNT(*)
	FROM items
	WHERE ` + soldFilter + `
	GROUP BY seller
	ORDER BY 2 DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SellerProfit
	for rows.Next() {
		var s SellerProfit
		if err := rows.Scan(&s.Seller, &s.Profit, &s.Revenue, &s.ItemsSold); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *postgresRepository) CostBreakdown(ctx context.Context) (CostBreakdown, error) {
	query := `SELECT
		COALESCE(AVG(price_php), 0),
		COALESCE(AVG(COALESCE(local_shipping_php, 0)), 0),
		COALESCE(AVG(COALESCE(forwarder_fee, 0)), 0),
		COALESCE(AVG(COALESCE(forwarder_buy_fee_php, 0)), 0),
		COALESCE(AVG(COALESCE(qc_service_fee_php, 0)), 0),
		COALESCE(AVG(COALESCE(lalamove_fee, 0)), 0),
		COALESCE(AVG(total_cost), 0)
	FROM items
	WHERE ` + soldFilter

	var b CostBreakdown
	err := r.db.QueryRow(ctx, query).Scan(
		&b.AvgPricePHP, &b.AvgLocalShipping, &b.AvgForwarderFee,
		&b.AvgForwarderBuyFee, &b.AvgQCServiceFee, &b.AvgLalamoveFee, &b.AvgTotalCost,
	)
	return b, err
}

func (r *postgresRepository) TopBatches(ctx context.Context, limit int) ([]BatchStats, error) {
	query := `SELECT batch, COALESCE(SUM(profit), 0), COUNT(*)
	FROM items
	WHERE ` + soldFilter + ` AND batch IS NOT NULL
	GROUP BY batch
	ORDER BY 2 DESC
	LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BatchStats
	for rows.Next() {
		var b BatchStats
		if err := rows.Scan(&b.Batch, &b.Profit, &b.ItemsSold); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *postgresRepository) TopCustomers(ctx context.Context, limit int) ([]CustomerStats, error) {
	query := `SELECT customer_name, COALESCE(SUM(profit), 0), COUNT(*), COALESCE(SUM(selling_price), 0)
	FROM items
	WHERE ` + soldFilter + ` AND customer_name IS NOT NULL
	GROUP BY customer_name
	ORDER BY 4 DESC
	LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerStats
	for rows.Next() {
		var c CustomerStats
		if err := rows.Scan(&c.Customer, &c.Profit, &c.ItemsSold, &c.TotalSpent); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ProfitDistribution(ctx context.Context) ([]ProfitBucket, error) {
	query := `SELECT floor(profit / 100) * 100 AS bucket, COUNT(*)
	FROM items
	WHERE ` + soldFilter + ` AND profit IS NOT NULL
	GROUP BY bucket
	ORDER BY bucket`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfitBucket
	for rows.Next() {
		var b ProfitBucket
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *postgresRepository) CumulativeProfit(ctx context.Context) ([]CumulativePoint, error) {
	query := `SELECT month, SUM(profit) OVER (ORDER BY month) FROM (
		SELECT to_char(sold_date, 'YYYY-MM') AS month, COALESCE(SUM(profit), 0) AS profit
		FROM items
		WHERE ` + soldFilter + ` AND sold_date IS NOT NULL
		GROUP BY month
	) monthly
	ORDER BY month`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CumulativePoint
	for rows.Next() {
		var p CumulativePoint
		if err := rows.Scan(&p.Month, &p.Profit); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ItemsSoldByMonth(ctx context.Context) ([]MonthCount, error) {
	query := `SELECT to_char(sold_date, 'YYYY-MM') AS month, COUNT(*)
	FROM items
	WHERE ` + soldFilter + ` AND sold_date IS NOT NULL
	GROUP BY month
	ORDER BY month`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthCount
	for rows.Next() {
		var m MonthCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
