package handler

import (
	"net/http"

	"food-dispatch/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler handles manager-dashboard HTTP requests.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Orders handles GET /api/manager/orders requests. It returns one view model
// per unprocessed order with its distance-ranked restaurant candidates.
func (h *DashboardHandler) Orders(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.RenderOrders(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
