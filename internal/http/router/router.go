package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courier-admin/internal/http/handlers"
	"courier-admin/internal/http/middleware"
	"courier-admin/internal/http/middleware/ratelimit"
	"courier-admin/internal/logx"
)

// Deps are the collaborators the router mounts.
type Deps struct {
	Logger    logx.Logger
	Verifier  middleware.TokenVerifier
	Metrics   *middleware.HTTPMetrics
	Gatherer  prometheus.Gatherer
	RateLimit *ratelimit.Middleware
	Timeout   time.Duration

	Base      *handlers.Handlers
	Shipments *handlers.ShipmentHandler
	Directory *handlers.DirectoryHandler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(d.Logger, d.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(d.Timeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(d.Base.NotFound)
	r.MethodNotAllowed(d.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Verifier, d.Logger))
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}

		r.Route("/shipments/{id}", func(r chi.Router) {
			r.Get("/", d.Shipments.Get)
			r.Get("/tracking", d.Shipments.Tracking)
			r.Post("/status", d.Shipments.UpdateStatus)
		})

		r.Get("/branches", d.Directory.ListBranches)
		r.Post("/branches", d.Directory.CreateBranch)
		r.Patch("/branches/{id}/status", d.Directory.SetBranchStatus)
		r.Get("/branches/{id}/delivery-users", d.Directory.ListDeliveryUsers)

		r.Get("/users", d.Directory.ListUsers)
		r.Post("/users", d.Directory.CreateUser)
	})

	return r
}
