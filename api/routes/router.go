package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harvestlane/harvestlane-backend/api/controllers"
	"github.com/harvestlane/harvestlane-backend/api/middleware"
	"github.com/harvestlane/harvestlane-backend/internal/locationsync"
	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/search"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	searchService search.Service,
	sellerService sellers.Service,
	productService products.Service,
	syncService locationsync.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisDep interface{ Ping(ctx context.Context) error }
	if redisClient != nil {
		redisDep = redisClient
	}
	ready := controllers.HealthReady(cfg, logg, dbP, redisDep)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", ready)
	})
	r.Get("/healthz", ready)

	if registry != nil {
		r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/search/products", controllers.SearchProducts(searchService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Get("/slug/{slug}", controllers.ProductBySlug(productService, logg))
		})

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/slug/{slug}", controllers.SellerBySlug(sellerService, logg))
			r.Patch("/{sellerType}/{sellerId}/location", controllers.SellerUpdateLocation(sellerService, logg))
		})

		r.Route("/admin/sync", func(r chi.Router) {
			r.Post("/sellers/{sellerType}/{sellerId}", controllers.SyncSeller(syncService, logg))
			r.Post("/all", controllers.SyncAll(syncService, logg))
		})
	})

	return r
}
