package router

import (
	"net/http"

	"food-dispatch/internal/handler"
	"food-dispatch/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Customer routes are open; the manager subtree requires the API key.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	dashboardHandler *handler.DashboardHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", productHandler.GetAvailable).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.Register).Methods(http.MethodPost)

	manager := api.PathPrefix("/manager").Subrouter()
	manager.Use(middleware.APIKeyAuth(apiKey, logger))
	manager.HandleFunc("/orders", dashboardHandler.Orders).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> router
	var h http.Handler = r
	h = corsHandler.Handler(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
