package analytics

import (
	"context"
	"encoding/json"
	"math"

	"golang.org/x/sync/singleflight"
)

const topListLimit = 10

// Service answers dashboard queries through the versioned cache, collapsing
// concurrent identical lookups with singleflight.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService builds Service. A nil cache disables caching.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Bump invalidates every cached panel. Item writers call it after mutations.
func (s *Service) Bump(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// Dashboard returns the headline summary.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := s.fetch(ctx, &stats, func(ctx context.Context) (interface{}, error) {
		stats, err := s.repo.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		stats.TotalInvested = round2(stats.TotalInvested)
		stats.TotalRevenue = round2(stats.TotalRevenue)
		stats.TotalProfit = round2(stats.TotalProfit)
		stats.AvgProfitPerItem = round2(stats.AvgProfitPerItem)
		stats.RevenueThisMonth = round2(stats.RevenueThisMonth)
		stats.ProfitThisMonth = round2(stats.ProfitThisMonth)
		stats.AvgProfitThisMonth = round2(stats.AvgProfitThisMonth)
		return stats, nil
	}, "analytics", "dashboard")
	return stats, err
}

// MonthlyProfitTrend returns profit, revenue and volume per month of sale.
func (s *Service) MonthlyProfitTrend(ctx context.Context) ([]MonthlyProfit, error) {
	var out []MonthlyProfit
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		months, err := s.repo.MonthlyProfit(ctx)
		if err != nil {
			return nil, err
		}
		for i := range months {
			months[i].Profit = round2(months[i].Profit)
			months[i].Revenue = round2(months[i].Revenue)
		}
		return months, nil
	}, "analytics", "monthly_profit")
	return out, err
}

// ProfitByCategory totals sold items per category.
func (s *Service) ProfitByCategory(ctx context.Context) ([]CategoryProfit, error) {
	var out []CategoryProfit
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		cats, err := s.repo.ProfitByCategory(ctx)
		if err != nil {
			return nil, err
		}
		for i := range cats {
			cats[i].Profit = round2(cats[i].Profit)
			cats[i].Revenue = round2(cats[i].Revenue)
		}
		return cats, nil
	}, "analytics", "profit_by_category")
	return out, err
}

// ProfitBySeller totals sold items per sourcing seller.
func (s *Service) ProfitBySeller(ctx context.Context) ([]SellerProfit, error) {
	var out []SellerProfit
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		sellers, err := s.repo.ProfitBySeller(ctx)
		if err != nil {
			return nil, err
		}
		for i := range sellers {
			sellers[i].Profit = round2(sellers[i].Profit)
			sellers[i].Revenue = round2(sellers[i].Revenue)
		}
		return sellers, nil
	}, "analytics", "profit_by_seller")
	return out, err
}

// CostBreakdown averages each cost component over sold items.
func (s *Service) CostBreakdown(ctx context.Context) (CostBreakdown, error) {
	var out CostBreakdown
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		b, err := s.repo.CostBreakdown(ctx)
		if err != nil {
			return nil, err
		}
		b.AvgPricePHP = round2(b.AvgPricePHP)
		b.AvgLocalShipping = round2(b.AvgLocalShipping)
		b.AvgForwarderFee = round2(b.AvgForwarderFee)
		b.AvgForwarderBuyFee = round2(b.AvgForwarderBuyFee)
		b.AvgQCServiceFee = round2(b.AvgQCServiceFee)
		b.AvgLalamoveFee = round2(b.AvgLalamoveFee)
		b.AvgTotalCost = round2(b.AvgTotalCost)
		return b, nil
	}, "analytics", "cost_breakdown")
	return out, err
}

// TopBatches returns the ten most profitable purchase batches.
func (s *Service) TopBatches(ctx context.Context) ([]BatchStats, error) {
	var out []BatchStats
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		batches, err := s.repo.TopBatches(ctx, topListLimit)
		if err != nil {
			return nil, err
		}
		for i := range batches {
			batches[i].Profit = round2(batches[i].Profit)
		}
		return batches, nil
	}, "analytics", "top_batches")
	return out, err
}

// TopCustomers returns the ten highest spending customers.
func (s *Service) TopCustomers(ctx context.Context) ([]CustomerStats, error) {
	var out []CustomerStats
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		customers, err := s.repo.TopCustomers(ctx, topListLimit)
		if err != nil {
			return nil, err
		}
		for i := range customers {
			customers[i].Profit = round2(customers[i].Profit)
			customers[i].TotalSpent = round2(customers[i].TotalSpent)
		}
		return customers, nil
	}, "analytics", "top_customers")
	return out, err
}

// ProfitDistribution buckets per-item profit into 100 peso bands.
func (s *Service) ProfitDistribution(ctx context.Context) ([]ProfitBucket, error) {
	var out []ProfitBucket
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		return s.repo.ProfitDistribution(ctx)
	}, "analytics", "profit_distribution")
	return out, err
}

// CumulativeProfit returns the running profit total per month.
func (s *Service) CumulativeProfit(ctx context.Context) ([]CumulativePoint, error) {
	var out []CumulativePoint
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		points, err := s.repo.CumulativeProfit(ctx)
		if err != nil {
			return nil, err
		}
		for i := range points {
			points[i].Profit = round2(points[i].Profit)
		}
		return points, nil
	}, "analytics", "cumulative_profit")
	return out, err
}

// ItemsSoldByMonth returns the sales volume per month.
func (s *Service) ItemsSoldByMonth(ctx context.Context) ([]MonthCount, error) {
	var out []MonthCount
	err := s.fetch(ctx, &out, func(ctx context.Context) (interface{}, error) {
		return s.repo.ItemsSoldByMonth(ctx)
	}, "analytics", "items_sold_by_month")
	return out, err
}

// AllTime surfaces the best month and best seller across the whole history.
func (s *Service) AllTime(ctx context.Context) (AllTimeStats, error) {
	months, err := s.MonthlyProfitTrend(ctx)
	if err != nil {
		return AllTimeStats{}, err
	}
	sellers, err := s.ProfitBySeller(ctx)
	if err != nil {
		return AllTimeStats{}, err
	}

	var stats AllTimeStats
	for i := range months {
		if stats.BestMonth == nil || months[i].Profit > stats.BestMonth.Profit {
			stats.BestMonth = &months[i]
		}
	}
	for i := range sellers {
		if stats.BestSeller == nil || sellers[i].Profit > stats.BestSeller.Profit {
			stats.BestSeller = &sellers[i]
		}
	}
	return stats, nil
}

func (s *Service) fetch(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error), keyParts ...string) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw json.RawMessage
		if err := s.cache.FetchJSON(ctx, key, &raw, loader); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.(json.RawMessage), dest)
}

func round2(n float64) float64 {
	return math.Round(n*100) / 100
}
