package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-dispatch/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) RegisterOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func orderRequestBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"firstname":      "Ivan",
		"lastname":       "Petrov",
		"phonenumber":    "+79031234567",
		"address":        "Moscow, Red Square",
		"paymentMethod":  "cash",
		"products": []map[string]interface{}{
			{"product": "P001", "quantity": 2},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestOrderHandler_Register_Success(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	orderID := uuid.New()
	mockService.On("RegisterOrder", mock.Anything, mock.AnythingOfType("*model.OrderRequest")).
		Return(&model.OrderResponse{
			ID:    orderID,
			Total: decimal.RequireFromString("900.00"),
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", orderRequestBody(t))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, orderID, resp.ID)

	mockService.AssertExpectations(t)
}

func TestOrderHandler_Register_InvalidJSON(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidJSON, resp.Error)

	mockService.AssertNotCalled(t, "RegisterOrder")
}

func TestOrderHandler_Register_MissingField(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	mockService.On("RegisterOrder", mock.Anything, mock.AnythingOfType("*model.OrderRequest")).
		Return(nil, errors.New("firstname is required"))

	req := httptest.NewRequest(http.MethodPost, "/api/orders", orderRequestBody(t))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeMissingField, resp.Error)
	assert.Contains(t, resp.Message, "firstname")
}

func TestOrderHandler_Register_DomainErrors(t *testing.T) {
	tests := []struct {
		name         string
		serviceErr   error
		expectedCode string
	}{
		{
			name:         "Product not found",
			serviceErr:   model.ErrProductNotFound,
			expectedCode: model.ErrCodeProductNotFound,
		},
		{
			name:         "Invalid quantity",
			serviceErr:   model.ErrInvalidQuantity,
			expectedCode: model.ErrCodeInvalidQuantity,
		},
		{
			name:         "Invalid phone",
			serviceErr:   model.ErrInvalidPhone,
			expectedCode: model.ErrCodeInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, zerolog.Nop())

			mockService.On("RegisterOrder", mock.Anything, mock.AnythingOfType("*model.OrderRequest")).
				Return(nil, tt.serviceErr)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", orderRequestBody(t))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
		})
	}
}

func TestOrderHandler_Register_InternalError(t *testing.T) {
	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, zerolog.Nop())

	mockService.On("RegisterOrder", mock.Anything, mock.AnythingOfType("*model.OrderRequest")).
		Return(nil, errors.New("failed to register order: connection lost"))

	req := httptest.NewRequest(http.MethodPost, "/api/orders", orderRequestBody(t))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInternalError, resp.Error)
	// Internal details never leak to the client.
	assert.NotContains(t, resp.Message, "connection lost")
}
