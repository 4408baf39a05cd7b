package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BhautikKhunt0/resin-store/internal/auth"
)

type RouterDeps struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Catalog  *CatalogHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Settings *SettingsHandler

	AuthManager    *auth.Manager
	RequestTimeout time.Duration
}

// NewRouter wires the public storefront routes and the token-guarded
// back office under a shared middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(middleware.RequestSize(1 << 20)) // 1MB

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", deps.Catalog.ListProducts)
		r.Get("/products/{id}", deps.Catalog.GetProduct)
		r.Get("/categories", deps.Catalog.ListCategories)
		r.Get("/banners", deps.Catalog.ListBanners)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", deps.Cart.GetCart)
				r.Delete("/", deps.Cart.ClearCart)
				r.Post("/items", deps.Cart.AddItem)
				r.Put("/items/{product_id}", deps.Cart.UpdateQuantity)
				r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/quote", deps.Checkout.Quote)
				r.Post("/submit", deps.Checkout.Submit)
			})
		})

		r.Post("/admin/login", deps.Auth.Login)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(deps.AuthManager))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", deps.Catalog.CreateProduct)
				r.Put("/{id}", deps.Catalog.UpdateProduct)
				r.Delete("/{id}", deps.Catalog.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", deps.Catalog.CreateCategory)
				r.Put("/{id}", deps.Catalog.UpdateCategory)
				r.Delete("/{id}", deps.Catalog.DeleteCategory)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", deps.Catalog.ListAllBanners)
				r.Post("/", deps.Catalog.CreateBanner)
				r.Put("/{id}", deps.Catalog.UpdateBanner)
				r.Delete("/{id}", deps.Catalog.DeleteBanner)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", deps.Orders.ListOrders)
				r.Get("/{id}", deps.Orders.GetOrder)
				r.Put("/{id}/status", deps.Orders.UpdateStatus)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", deps.Settings.GetSettings)
				r.Put("/", deps.Settings.UpdateSettings)
			})
		})
	})

	return r
}
