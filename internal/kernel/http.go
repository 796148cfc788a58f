// Package kernel assembles the HTTP handler: global middleware, /metrics,
// and the admin routes bound to a store.
package kernel

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/listeners"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/app/routes"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
	"github.com/shashiranjanraj/backoffice/pkg/middleware"
	"github.com/shashiranjanraj/backoffice/pkg/reqid"
	"github.com/shashiranjanraj/backoffice/pkg/router"
)

type Options struct {
	Store    *repositories.Store
	Services services.Options
	CORS     middleware.CORSOptions

	// Limiter may be nil, which disables rate limiting.
	Limiter middleware.Limiter
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(opts Options) (*HTTPKernel, error) {
	listeners.Register()

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(opts.CORS))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}

	r.HandleFunc("/metrics", metrics.Handler())

	if err := routes.RegisterAPI(r, opts.Store, opts.Services); err != nil {
		return nil, err
	}
	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
