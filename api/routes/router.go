package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquamart/aquamart-backend/api/controllers"
	"github.com/aquamart/aquamart-backend/api/middleware"
	"github.com/aquamart/aquamart-backend/internal/auth"
	"github.com/aquamart/aquamart-backend/internal/cart"
	"github.com/aquamart/aquamart-backend/internal/catalog"
	"github.com/aquamart/aquamart-backend/internal/categories"
	checkoutsvc "github.com/aquamart/aquamart-backend/internal/checkout"
	"github.com/aquamart/aquamart-backend/internal/media"
	"github.com/aquamart/aquamart-backend/internal/orders"
	"github.com/aquamart/aquamart-backend/internal/settings"
	"github.com/aquamart/aquamart-backend/internal/users"
	"github.com/aquamart/aquamart-backend/pkg/auth/session"
	"github.com/aquamart/aquamart-backend/pkg/config"
	"github.com/aquamart/aquamart-backend/pkg/db"
	"github.com/aquamart/aquamart-backend/pkg/logger"
	"github.com/aquamart/aquamart-backend/pkg/metrics"
	"github.com/aquamart/aquamart-backend/pkg/redis"
)

// Deps bundles everything the router needs to wire the HTTP surface.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	HTTPMetrics  *metrics.HTTPMetrics
	PromRegistry *prometheus.Registry
	DB           db.Pinger
	Redis        *redis.Client
	Sessions     session.AccessSessionChecker

	Auth       auth.Service
	Cart       cart.Service
	Catalog    catalog.Service
	Categories categories.Service
	Checkout   checkoutsvc.Service
	Media      media.Service
	Orders     orders.Service
	Settings   settings.Service
	Users      users.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryTree(deps.Categories, logg))
		r.Get("/products", controllers.ProductList(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/settings", controllers.PublicSettings(deps.Settings, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, deps.Cart, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/auth/refresh", controllers.AuthRefresh(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(deps.Catalog, logg))
				r.Post("/", controllers.AdminProductCreate(deps.Catalog, logg))
				r.Patch("/{productId}", controllers.AdminProductUpdate(deps.Catalog, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(deps.Catalog, logg))
				r.Post("/{productId}/stock", controllers.AdminProductAdjustStock(deps.Catalog, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.AdminCategoryFlat(deps.Categories, logg))
				r.Post("/", controllers.AdminCategoryCreate(deps.Categories, logg))
				r.Patch("/{categoryId}", controllers.AdminCategoryUpdate(deps.Categories, logg))
				r.Delete("/{categoryId}", controllers.AdminCategoryDelete(deps.Categories, logg))
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", controllers.AdminMediaList(deps.Media, logg))
				r.Post("/", controllers.AdminMediaUpload(deps.Media, cfg.Media.MaxUploadMB, logg))
				r.Delete("/{mediaId}", controllers.AdminMediaDelete(deps.Media, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrderDetail(deps.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.PublicSettings(deps.Settings, logg))
				r.Put("/", controllers.AdminUpsertSettings(deps.Settings, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminUserList(deps.Users, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin(logg))
					r.Post("/", controllers.AdminUserCreate(deps.Users, logg))
					r.Patch("/{userId}", controllers.AdminUserUpdate(deps.Users, logg))
					r.Delete("/{userId}", controllers.AdminUserDelete(deps.Users, logg))
				})
			})
		})
	})

	return r
}
