package handler

import (
	"net/http"

	"food-dispatch/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAvailable handles GET /api/products requests.
func (h *ProductHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAvailable(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
