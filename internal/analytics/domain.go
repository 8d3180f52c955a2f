// Package analytics aggregates sold and pipeline items into the dashboard
// figures. Results are cached in Redis behind a version that every write to
// the item tables bumps.
package analytics

// An item counts as sold once it reaches a terminal sale status; refunds,
// cancellations and returns drop out of the pipeline without selling.

// DashboardStats is the headline summary: all-time totals plus the figures
// for the calendar month in progress.
type DashboardStats struct {
	TotalItems         int     `json:"totalItems"`
	ItemsSold          int     `json:"itemsSold"`
	ItemsInPipeline    int     `json:"itemsInPipeline"`
	TotalInvested      float64 `json:"totalInvested"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalProfit        float64 `json:"totalProfit"`
	AvgProfitPerItem   float64 `json:"avgProfitPerItem"`
	SoldThisMonth      int     `json:"soldThisMonth"`
	RevenueThisMonth   float64 `json:"revenueThisMonth"`
	ProfitThisMonth    float64 `json:"profitThisMonth"`
	AvgProfitThisMonth float64 `json:"avgProfitThisMonth"`
}

// MonthlyProfit is one month of sales, keyed YYYY-MM.
type MonthlyProfit struct {
	Month     string  `json:"month"`
	Profit    float64 `json:"profit"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int     `json:"itemsSold"`
}

// CategoryProfit totals sold items per category.
type CategoryProfit struct {
	Category  string  `json:"category"`
	Profit    float64 `json:"profit"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int     `json:"itemsSold"`
}

// SellerProfit totals sold items per sourcing seller.
type SellerProfit struct {
	Seller    string  `json:"seller"`
	Profit    float64 `json:"profit"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int     `json:"itemsSold"`
}

// CostBreakdown averages each cost component over sold items.
type CostBreakdown struct {
	AvgPricePHP        float64 `json:"avgPricePHP"`
	AvgLocalShipping   float64 `json:"avgLocalShipping"`
	AvgForwarderFee    float64 `json:"avgForwarderFee"`
	AvgForwarderBuyFee float64 `json:"avgForwarderBuyFee"`
	AvgQCServiceFee    float64 `json:"avgQCServiceFee"`
	AvgLalamoveFee     float64 `json:"avgLalamoveFee"`
	AvgTotalCost       float64 `json:"avgTotalCost"`
}

// BatchStats totals sold items per purchase batch.
type BatchStats struct {
	Batch     string  `json:"batch"`
	Profit    float64 `json:"profit"`
	ItemsSold int     `json:"itemsSold"`
}

// CustomerStats totals purchases per customer.
type CustomerStats struct {
	Customer   string  `json:"customer"`
	Profit     float64 `json:"profit"`
	ItemsSold  int     `json:"itemsSold"`
	TotalSpent float64 `json:"totalSpent"`
}

// ProfitBucket is one 100-peso band of the per-item profit histogram. Bucket
// holds the band's lower bound.
type ProfitBucket struct {
	Bucket float64 `json:"bucket"`
	Count  int     `json:"count"`
}

// CumulativePoint is the running profit total at the end of a month.
type CumulativePoint struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

// MonthCount is how many items sold in a month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// AllTimeStats surfaces the records across the whole history.
type AllTimeStats struct {
	BestMonth  *MonthlyProfit `json:"bestMonth,omitempty"`
	BestSeller *SellerProfit  `json:"bestSeller,omitempty"`
}
