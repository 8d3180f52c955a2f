package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	dashboardCalls int
	dashboard      DashboardStats
	monthly        []MonthlyProfit
	categories     []CategoryProfit
	sellers        []SellerProfit
}

func (m *memoryRepo) Dashboard(context.Context) (DashboardStats, error) {
	m.dashboardCalls++
	return m.dashboard, nil
}

func (m *memoryRepo) MonthlyProfit(context.Context) ([]MonthlyProfit, error) {
	return m.monthly, nil
}

func (m *memoryRepo) ProfitByCategory(context.Context) ([]CategoryProfit, error) {
	return m.categories, nil
}

func (m *memoryRepo) ProfitBySeller(context.Context) ([]SellerProfit, error) {
	return m.sellers, nil
}

func (m *memoryRepo) CostBreakdown(context.Context) (CostBreakdown, error) {
	return CostBreakdown{AvgTotalCost: 1234.5678}, nil
}

func (m *memoryRepo) TopBatches(context.Context, int) ([]BatchStats, error) {
	return nil, nil
}

func (m *memoryRepo) TopCustomers(context.Context, int) ([]CustomerStats, error) {
	return nil, nil
}

func (m *memoryRepo) ProfitDistribution(context.Context) ([]ProfitBucket, error) {
	return []ProfitBucket{{Bucket: 0, Count: 3}, {Bucket: 100, Count: 1}}, nil
}

func (m *memoryRepo) CumulativeProfit(context.Context) ([]CumulativePoint, error) {
	return nil, nil
}

func (m *memoryRepo) ItemsSoldByMonth(context.Context) ([]MonthCount, error) {
	return nil, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, NewCache(client, time.Minute))
}

func TestDashboardCachesUntilBump(t *testing.T) {
	repo := &memoryRepo{dashboard: DashboardStats{TotalItems: 5, ItemsSold: 2, TotalProfit: 1500.456}}
	svc := newTestService(t, repo)

	first, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, first.TotalItems)
	require.Equal(t, 1500.46, first.TotalProfit)
	require.Equal(t, 1, repo.dashboardCalls)

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.dashboardCalls)

	repo.dashboard.TotalItems = 6
	require.NoError(t, svc.Bump(context.Background()))

	third, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, third.TotalItems)
	require.Equal(t, 2, repo.dashboardCalls)
}

func TestDashboardCarriesThisMonthFigures(t *testing.T) {
	repo := &memoryRepo{dashboard: DashboardStats{
		TotalItems:         10,
		ItemsSold:          4,
		SoldThisMonth:      2,
		RevenueThisMonth:   9400.456,
		ProfitThisMonth:    2100.499,
		AvgProfitThisMonth: 1050.2495,
	}}
	svc := newTestService(t, repo)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.SoldThisMonth)
	require.Equal(t, 9400.46, stats.RevenueThisMonth)
	require.Equal(t, 2100.5, stats.ProfitThisMonth)
	require.Equal(t, 1050.25, stats.AvgProfitThisMonth)
}

func TestDashboardSurvivesRedisOutage(t *testing.T) {
	repo := &memoryRepo{dashboard: DashboardStats{TotalItems: 7}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(repo, NewCache(client, time.Minute))

	mr.Close()

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalItems)
	require.Equal(t, 1, repo.dashboardCalls)
}

func TestDashboardWithoutCache(t *testing.T) {
	repo := &memoryRepo{dashboard: DashboardStats{TotalItems: 3}}
	svc := NewService(repo, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalItems)
}

func TestAllTimePicksBestMonthAndSeller(t *testing.T) {
	repo := &memoryRepo{
		monthly: []MonthlyProfit{
			{Month: "2025-03", Profit: 800},
			{Month: "2025-04", Profit: 2200},
			{Month: "2025-05", Profit: 1500},
		},
		sellers: []SellerProfit{
			{Seller: "TopKicks", Profit: 3100},
			{Seller: "WatchHub", Profit: 1400},
		},
	}
	svc := newTestService(t, repo)

	stats, err := svc.AllTime(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.BestMonth)
	require.Equal(t, "2025-04", stats.BestMonth.Month)
	require.NotNil(t, stats.BestSeller)
	require.Equal(t, "TopKicks", stats.BestSeller.Seller)
}

func TestAllTimeEmptyHistory(t *testing.T) {
	svc := newTestService(t, &memoryRepo{})

	stats, err := svc.AllTime(context.Background())
	require.NoError(t, err)
	require.Nil(t, stats.BestMonth)
	require.Nil(t, stats.BestSeller)
}

func TestGroupAggregatesCarryRoundedRevenue(t *testing.T) {
	repo := &memoryRepo{
		categories: []CategoryProfit{{Category: "shoes", Profit: 1200.456, Revenue: 8600.004, ItemsSold: 3}},
		sellers:    []SellerProfit{{Seller: "TopKicks", Profit: 900.006, Revenue: 5400.009, ItemsSold: 2}},
	}
	svc := newTestService(t, repo)

	cats, err := svc.ProfitByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Equal(t, 8600.0, cats[0].Revenue)
	require.Equal(t, 1200.46, cats[0].Profit)

	sellers, err := svc.ProfitBySeller(context.Background())
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	require.Equal(t, 5400.01, sellers[0].Revenue)
	require.Equal(t, 900.01, sellers[0].Profit)
}

func TestCostBreakdownRounds(t *testing.T) {
	svc := newTestService(t, &memoryRepo{})

	b, err := svc.CostBreakdown(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1234.57, b.AvgTotalCost)
}

func TestProfitDistributionPassthrough(t *testing.T) {
	svc := newTestService(t, &memoryRepo{})

	buckets, err := svc.ProfitDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	require.Equal(t, 100.0, buckets[1].Bucket)
}
