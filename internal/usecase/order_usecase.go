package usecase

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order record management.
type OrderUsecase interface {
	// PlaceOrder persists a new order with its line items. The owning
	// user must exist.
	PlaceOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)

	// GetOrder retrieves an order by ID, including line items.
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}
