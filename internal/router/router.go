package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kiwari-pos/qrcounter/internal/config"
	"github.com/kiwari-pos/qrcounter/internal/handler"
	"github.com/kiwari-pos/qrcounter/internal/metrics"
	mw "github.com/kiwari-pos/qrcounter/internal/middleware"
	"github.com/kiwari-pos/qrcounter/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Catalog edits are guarded by the operator login when a PIN hash is configured.
func New(cfg *config.Config, catalog handler.CatalogServicer, orders handler.OrderServicer, hub *ws.Hub, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	authHandler := handler.NewAuthHandler(cfg.OperatorPINHash, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Display channel
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})
	handler.NewMobileHandler().RegisterRoutes(r)

	// Counter
	posHandler := handler.NewPosHandler(catalog, orders, mw.RequireOperator(cfg.JWTSecret, cfg.AuthEnabled()))
	posHandler.RegisterRoutes(r)

	if cfg.AuthEnabled() {
		log.Println("Router initialized, catalog edits require operator login")
	} else {
		log.Println("Router initialized, operator login disabled")
	}
	return r
}
