package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/pasalo-app/pasalo/internal/analytics"
	jobmetrics "github.com/pasalo-app/pasalo/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// AnalyticsWarmupJob pre-populates the analytics cache so the first dashboard
// load after an invalidation stays fast.
type AnalyticsWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewAnalyticsWarmupJob wires dependencies for the warmup handler.
func NewAnalyticsWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{
		Analytics: analyticsSvc,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes analytics warmup tasks.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("analytics warmup: handler not configured")
	}
	var payload AnalyticsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskAnalyticsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting analytics warmup")
	start := j.now()

	// Each panel warms independently with a per-panel timeout.
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	panels := j.panels(payload.Panels)
	g, gctx := errgroup.WithContext(warmCtx)
	for name, warm := range panels {
		g.Go(func() error {
			if err := warm(gctx); err != nil {
				logger.Error("warm panel", slog.String("panel", name), slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	resultErr = g.Wait()
	if resultErr != nil {
		return resultErr
	}

	logger.Info("completed analytics warmup",
		slog.Int("panels", len(panels)),
		slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *AnalyticsWarmupJob) panels(requested []string) map[string]func(context.Context) error {
	all := map[string]func(context.Context) error{
		"dashboard": func(ctx context.Context) error {
			_, err := j.Analytics.Dashboard(ctx)
			return err
		},
		"monthly_profit": func(ctx context.Context) error {
			_, err := j.Analytics.MonthlyProfitTrend(ctx)
			return err
		},
		"profit_by_category": func(ctx context.Context) error {
			_, err := j.Analytics.ProfitByCategory(ctx)
			return err
		},
		"profit_by_seller": func(ctx context.Context) error {
			_, err := j.Analytics.ProfitBySeller(ctx)
			return err
		},
		"cost_breakdown": func(ctx context.Context) error {
			_, err := j.Analytics.CostBreakdown(ctx)
			return err
		},
		"top_batches": func(ctx context.Context) error {
			_, err := j.Analytics.TopBatches(ctx)
			return err
		},
		"top_customers": func(ctx context.Context) error {
			_, err := j.Analytics.TopCustomers(ctx)
			return err
		},
		"profit_distribution": func(ctx context.Context) error {
			_, err := j.Analytics.ProfitDistribution(ctx)
			return err
		},
		"cumulative_profit": func(ctx context.Context) error {
			_, err := j.Analytics.CumulativeProfit(ctx)
			return err
		},
		"items_sold_by_month": func(ctx context.Context) error {
			_, err := j.Analytics.ItemsSoldByMonth(ctx)
			return err
		},
	}
	if len(requested) == 0 {
		return all
	}
	selected := make(map[string]func(context.Context) error, len(requested))
	for _, name := range requested {
		if warm, ok := all[name]; ok {
			selected[name] = warm
		}
	}
	return selected
}

func (j *AnalyticsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAnalyticsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskAnalyticsWarmup))
}

func (j *AnalyticsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *AnalyticsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
