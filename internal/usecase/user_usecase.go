package usecase

import (
	"context"

	"insight/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for user record management.
type UserUsecase interface {
	// RegisterUser persists a new user record.
	RegisterUser(ctx context.Context, user *entity.User) (*entity.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
