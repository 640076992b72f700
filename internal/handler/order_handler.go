package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"food-dispatch/internal/model"
	"food-dispatch/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order intake HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Register handles POST /api/orders requests.
func (h *OrderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.RegisterOrder(r.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "required") ||
			strings.Contains(err.Error(), "must contain") ||
			strings.Contains(err.Error(), "unknown payment") ||
			strings.Contains(err.Error(), "nil") {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, err.Error(), h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}
