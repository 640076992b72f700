package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-dispatch/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) RenderOrders(ctx context.Context) ([]model.OrderViewModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderViewModel), args.Error(1)
}

func TestDashboardHandler_Orders_Success(t *testing.T) {
	mockService := new(MockDashboardService)
	handler := NewDashboardHandler(mockService, zerolog.Nop())

	views := []model.OrderViewModel{
		{
			ID:           uuid.New(),
			Firstname:    "Ivan",
			Lastname:     "Petrov",
			Address:      "Moscow, Red Square",
			Total:        decimal.RequireFromString("900.00"),
			StatusLabel:  "Unprocessed",
			PaymentLabel: "Cash",
			RegisteredAt: time.Now(),
			Candidates: []model.RankedCandidate{
				{RestaurantID: 1, RestaurantName: "Near Kitchen", DistanceKm: 1.5},
				{RestaurantID: 2, RestaurantName: "Far Kitchen", DistanceKm: 3.3},
			},
		},
	}
	mockService.On("RenderOrders", mock.Anything).Return(views, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/orders", nil)
	rec := httptest.NewRecorder()

	handler.Orders(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []model.OrderViewModel
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	require.Len(t, resp[0].Candidates, 2)
	assert.Equal(t, "Near Kitchen", resp[0].Candidates[0].RestaurantName)
	assert.InDelta(t, 1.5, resp[0].Candidates[0].DistanceKm, 0.001)

	mockService.AssertExpectations(t)
}

func TestDashboardHandler_Orders_EmptyDashboard(t *testing.T) {
	mockService := new(MockDashboardService)
	handler := NewDashboardHandler(mockService, zerolog.Nop())

	mockService.On("RenderOrders", mock.Anything).Return([]model.OrderViewModel{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/manager/orders", nil)
	rec := httptest.NewRecorder()

	handler.Orders(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDashboardHandler_Orders_GeocoderUnavailable(t *testing.T) {
	mockService := new(MockDashboardService)
	handler := NewDashboardHandler(mockService, zerolog.Nop())

	mockService.On("RenderOrders", mock.Anything).
		Return(nil, fmt.Errorf("address resolution failed: %w", model.ErrGeocoderUnavailable))

	req := httptest.NewRequest(http.MethodGet, "/api/manager/orders", nil)
	rec := httptest.NewRecorder()

	handler.Orders(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeGeocoderUnavailable, resp.Error)
}

func TestDashboardHandler_Orders_StoreFailure(t *testing.T) {
	mockService := new(MockDashboardService)
	handler := NewDashboardHandler(mockService, zerolog.Nop())

	mockService.On("RenderOrders", mock.Anything).
		Return(nil, errors.New("failed to load unprocessed orders: connection lost"))

	req := httptest.NewRequest(http.MethodGet, "/api/manager/orders", nil)
	rec := httptest.NewRecorder()

	handler.Orders(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInternalError, resp.Error)
}
