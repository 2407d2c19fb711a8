package http

import (
	"net/http"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBodySize    = 1 << 20
)

type Options struct {
	ServiceName        string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	AllowedOrigins     []string
}

type Services struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Orders  *service.OrderService
}

// NewRouter mounts the JSON API under /api and wraps it with OpenTelemetry instrumentation.
func NewRouter(opts Options, svc Services, log *zap.Logger) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxRequestBodySize <= 0 {
		opts.MaxRequestBodySize = defaultMaxBodySize
	}

	authMW := NewAuthMiddleware(svc.Auth)
	authHandler := NewAuthHandler(svc.Auth, opts.RequestTimeout)
	productHandler := NewProductHandler(svc.Catalog, opts.RequestTimeout)
	adminHandler := NewAdminHandler(svc.Catalog, opts.RequestTimeout)
	cartHandler := NewCartHandler(svc.Cart, opts.RequestTimeout)
	ordersHandler := NewOrdersHandler(svc.Orders, opts.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(middleware.RequestSize(opts.MaxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, service.KindNotFound.String(), "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(opts.ServiceName))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(authMW.RequireAuth).Get("/me", authHandler.Me)
			r.With(authMW.RequireAuth).Post("/logout", authHandler.Logout)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Get("/", ordersHandler.ListOrders)
			r.Post("/checkout", ordersHandler.Checkout)
			r.Get("/{id}", ordersHandler.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMW.RequireAuth, authMW.RequireAdmin)
			r.Get("/products", adminHandler.ListProducts)
			r.Post("/products", adminHandler.CreateProduct)
			r.Patch("/products/{id}", adminHandler.UpdateProduct)
			r.Delete("/products/{id}", adminHandler.DeleteProduct)
		})
	})

	return otelhttp.NewHandler(r, opts.ServiceName)
}
