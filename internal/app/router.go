package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pasalo-app/pasalo/internal/analytics"
	"github.com/pasalo-app/pasalo/internal/items"
	"github.com/pasalo-app/pasalo/internal/observability"
	"github.com/pasalo-app/pasalo/internal/personal"
	"github.com/pasalo-app/pasalo/internal/sellers"
	"github.com/pasalo-app/pasalo/internal/settings"
	"github.com/pasalo-app/pasalo/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	ItemsHandler     *items.Handler
	PersonalHandler  *personal.Handler
	SellersHandler   *sellers.Handler
	SettingsHandler  *settings.Handler
	AnalyticsHandler *analytics.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/items", params.ItemsHandler.Routes())
		r.Mount("/personal-items", params.PersonalHandler.Routes())
		r.Mount("/sellers", params.SellersHandler.Routes())
		r.Mount("/settings", params.SettingsHandler.Routes())
		r.Mount("/analytics", params.AnalyticsHandler.Routes())
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
