package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	analytichttp "github.com/rosetrack/rosetrack/internal/analytics/http"
	"github.com/rosetrack/rosetrack/internal/inventory"
	"github.com/rosetrack/rosetrack/internal/leads"
	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SalesHandler     *sales.Handler
	LeadsHandler     *leads.Handler
	InventoryHandler *inventory.Handler
	AnalyticsHandler *analytichttp.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with Rosetrack defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/sales", params.SalesHandler.MountRoutes)
	r.Route("/leads", params.LeadsHandler.MountRoutes)
	r.Route("/inventory", params.InventoryHandler.MountRoutes)
	r.Route("/analytics", params.AnalyticsHandler.MountRoutes)
	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	return r
}
