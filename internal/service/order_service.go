package service

import (
	"context"
	"fmt"
	"time"

	"food-dispatch/internal/model"
	"food-dispatch/internal/repository"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	phoneRegion string
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. phoneRegion is the default
// region for parsing phone numbers without an international prefix.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	phoneRegion string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		phoneRegion: phoneRegion,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// RegisterOrder validates and creates a new order.
//
// Line prices are captured here as unit price times quantity; later catalog
// price changes never alter a registered order's total.
func (s *orderService) RegisterOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]string, len(req.Products))
	for i, line := range req.Products {
		productIDs[i] = line.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product prices")
		return nil, fmt.Errorf("failed to retrieve product prices: %w", err)
	}

	priceByID := make(map[string]decimal.Decimal, len(products))
	for _, product := range products {
		priceByID[product.ID] = product.Price
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to register order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		ID:            uuid.New(),
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Phonenumber:   req.Phonenumber,
		Address:       req.Address,
		Status:        model.OrderStatusUnprocessed,
		PaymentMethod: req.PaymentMethod,
		Comment:       req.Comment,
		RegisteredAt:  time.Now(),
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to register order: %w", err)
	}

	items := make([]model.OrderLineItem, len(req.Products))
	for i, line := range req.Products {
		items[i] = model.OrderLineItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			LinePrice: priceByID[line.ProductID].Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
	}

	if err = s.orderRepo.CreateLineItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order line items")
		return nil, fmt.Errorf("failed to register order line items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to register order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(items)).
		Msg("order registered")

	return &model.OrderResponse{
		ID:    order.ID,
		Items: items,
		Total: model.Total(items),
	}, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if req.Firstname == "" {
		return fmt.Errorf("firstname is required")
	}

	if req.Lastname == "" {
		return fmt.Errorf("lastname is required")
	}

	if req.Address == "" {
		return fmt.Errorf("address is required")
	}

	switch req.PaymentMethod {
	case model.PaymentCash, model.PaymentCard, model.PaymentNotSpecified:
	default:
		return fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}

	if err := s.validatePhone(req.Phonenumber); err != nil {
		return err
	}

	if len(req.Products) == 0 {
		return fmt.Errorf("order must contain at least one product")
	}

	for i, line := range req.Products {
		if line.ProductID == "" {
			return fmt.Errorf("product %d: product ID is required", i)
		}

		if line.Quantity < 1 {
			s.logger.Warn().
				Int("line_index", i).
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// validatePhone checks the number parses and is mobile-capable.
func (s *orderService) validatePhone(raw string) error {
	if raw == "" {
		return fmt.Errorf("phonenumber is required")
	}

	number, err := phonenumbers.Parse(raw, s.phoneRegion)
	if err != nil {
		s.logger.Warn().Str("phonenumber", raw).Err(err).Msg("unparseable phone number")
		return model.ErrInvalidPhone
	}

	if !phonenumbers.IsValidNumber(number) {
		return model.ErrInvalidPhone
	}

	switch phonenumbers.GetNumberType(number) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return nil
	}
	return model.ErrInvalidPhone
}
