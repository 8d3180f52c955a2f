package analytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pasalo-app/pasalo/internal/platform/httpx"
)

// Handler exposes the dashboard panels over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Routes mounts the analytics endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.panel("dashboard", func(r *http.Request) (any, error) {
		return h.service.Dashboard(r.Context())
	}))
	r.Get("/monthly-profit", h.panel("monthly profit", func(r *http.Request) (any, error) {
		return h.service.MonthlyProfitTrend(r.Context())
	}))
	r.Get("/profit-by-category", h.panel("profit by category", func(r *http.Request) (any, error) {
		return h.service.ProfitByCategory(r.Context())
	}))
	r.Get("/profit-by-seller", h.panel("profit by seller", func(r *http.Request) (any, error) {
		return h.service.ProfitBySeller(r.Context())
	}))
	r.Get("/cost-breakdown", h.panel("cost breakdown", func(r *http.Request) (any, error) {
		return h.service.CostBreakdown(r.Context())
	}))
	r.Get("/top-batches", h.panel("top batches", func(r *http.Request) (any, error) {
		return h.service.TopBatches(r.Context())
	}))
	r.Get("/top-customers", h.panel("top customers", func(r *http.Request) (any, error) {
		return h.service.TopCustomers(r.Context())
	}))
	r.Get("/profit-distribution", h.panel("profit distribution", func(r *http.Request) (any, error) {
		return h.service.ProfitDistribution(r.Context())
	}))
	r.Get("/cumulative-profit", h.panel("cumulative profit", func(r *http.Request) (any, error) {
		return h.service.CumulativeProfit(r.Context())
	}))
	r.Get("/items-sold-by-month", h.panel("items sold by month", func(r *http.Request) (any, error) {
		return h.service.ItemsSoldByMonth(r.Context())
	}))
	r.Get("/all-time", h.panel("all time", func(r *http.Request) (any, error) {
		return h.service.AllTime(r.Context())
	}))
	return r
}

func (h *Handler) panel(name string, load func(*http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := load(r)
		if err != nil {
			h.logger.Error("analytics panel failed", "panel", name, "error", err)
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, data)
	}
}
