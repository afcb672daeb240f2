// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"insight/internal/domain/entity"
	"insight/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
// Orders are immutable once created; there are no update operations.
type OrderRepository interface {
	// FindByID retrieves a single order, including its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order together with its embedded line items.
	Create(ctx context.Context, order *entity.Order) error
}
