// Package kernel assembles the HTTP handler: global middleware, ops
// endpoints and the application routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/app/controllers"
	"github.com/shashiranjanraj/storehub/app/routes"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/metrics"
	"github.com/shashiranjanraj/storehub/pkg/middleware"
	"github.com/shashiranjanraj/storehub/pkg/reqid"
	"github.com/shashiranjanraj/storehub/pkg/response"
	"github.com/shashiranjanraj/storehub/pkg/router"
)

// Options configures the kernel.
type Options struct {
	Services           controllers.Options
	RateLimitPerMinute int
	CORS               middleware.CORSOptions
	// Stop ends background work started by middleware (rate-limit sweeps).
	Stop <-chan struct{}
}

// HTTPKernel owns the router and the services behind it.
type HTTPKernel struct {
	router *router.Router
	db     *gorm.DB
}

func NewHTTPKernel(db *gorm.DB, opts Options) (*HTTPKernel, error) {
	svc, err := controllers.NewServices(db, opts.Services)
	if err != nil {
		return nil, err
	}

	r := router.New()

	// Outermost first: metrics see total latency, Recovery catches panics
	// from everything below it, Logger needs the request id.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(opts.CORS))
	r.Use(middleware.RateLimit(opts.RateLimitPerMinute, time.Minute, opts.Stop))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	k := &HTTPKernel{router: r, db: db}
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", k.health)

	if err := routes.RegisterAPI(r, svc); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }

// health GET /healthz reports 503 while the database is unreachable.
func (k *HTTPKernel) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, k.db); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Envelope{
			Status:  http.StatusServiceUnavailable,
			Message: "database unavailable",
		})
		return
	}
	response.Success(w, map[string]string{"database": "ok"})
}
