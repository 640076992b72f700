package service

import (
	"context"
	"fmt"

	"food-dispatch/internal/model"
	"food-dispatch/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAvailable retrieves products offered by at least one restaurant.
func (s *productService) GetAvailable(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAvailable(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get available products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Msg("retrieved available products")

	return products, nil
}
