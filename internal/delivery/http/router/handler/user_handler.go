package handler

import (
	"log/slog"
	"net/http"
	"time"

	"insight/internal/delivery/http/response"
	"insight/internal/domain/entity"
	domainerrors "insight/internal/domain/errors"
	"insight/internal/domain/repository"
	"insight/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// AddressPayload carries the optional address fields of a user.
type AddressPayload struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	Zipcode *string `json:"zipcode,omitempty"`
	Country *string `json:"country,omitempty"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name            string          `json:"name" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Age             int             `json:"age" validate:"gte=0"`
	Address         *AddressPayload `json:"address,omitempty"`
	IsPremiumMember bool            `json:"is_premium_member"`
	DateJoined      time.Time       `json:"date_joined" validate:"required"`
	ReferralCode    *string         `json:"referral_code,omitempty"`
	ReferredBy      *string         `json:"referred_by,omitempty"`
}

// UserResponse is the serialized shape of a user record.
type UserResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Age             int             `json:"age"`
	Address         *AddressPayload `json:"address,omitempty"`
	IsPremiumMember bool            `json:"is_premium_member"`
	DateJoined      time.Time       `json:"date_joined"`
	ReferralCode    *string         `json:"referral_code,omitempty"`
	ReferredBy      *string         `json:"referred_by,omitempty"`
}

// CreateUser handles creating a new user record
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user := &entity.User{
		Name:            req.Name,
		Email:           req.Email,
		Age:             req.Age,
		IsPremiumMember: req.IsPremiumMember,
		DateJoined:      req.DateJoined,
		ReferralCode:    req.ReferralCode,
		ReferredBy:      req.ReferredBy,
	}
	if req.Address != nil {
		user.Address = &entity.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			Zipcode: req.Address.Zipcode,
			Country: req.Address.Country,
		}
	}

	created, err := h.userUC.RegisterUser(c.Request().Context(), user)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(created), "User created successfully")
}

// GetUser handles retrieving a user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid user ID format")
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return response.NotFound(c, domainerrors.ErrUserNotFound.ErrorCode(), domainerrors.ErrUserNotFound.Message())
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User retrieved successfully")
}

func toUserResponse(user *entity.User) *UserResponse {
	resp := &UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Age:             user.Age,
		IsPremiumMember: user.IsPremiumMember,
		DateJoined:      user.DateJoined,
		ReferralCode:    user.ReferralCode,
		ReferredBy:      user.ReferredBy,
	}
	if user.Address != nil {
		resp.Address = &AddressPayload{
			Street:  user.Address.Street,
			City:    user.Address.City,
			Zipcode: user.Address.Zipcode,
			Country: user.Address.Country,
		}
	}

	return resp
}
