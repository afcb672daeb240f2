package usecase

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductUsecase defines the interface for catalog record management.
type ProductUsecase interface {
	// AddProduct persists a new catalog product.
	AddProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}
