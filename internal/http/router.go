package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edrone/storefront/internal/auth"
	"github.com/edrone/storefront/internal/ledger"
)

// NewRouter assembles the full API surface. Auth endpoints are public;
// everything else sits behind the session check.
func NewRouter(session *auth.Session, l *ledger.Ledger, requestTimeout time.Duration) http.Handler {
	authHandler := NewAuthHandler(session)
	productHandler := NewProductHandler()
	cartHandler := NewCartHandler(l)
	orderHandler := NewOrderHandler(l)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(session))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Get("/categories", productHandler.Categories)
				r.Get("/{product_id}", productHandler.Get)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			})

			r.Post("/checkout", orderHandler.Checkout)
			r.Get("/orders", orderHandler.ListOrders)
		})
	})

	return r
}
