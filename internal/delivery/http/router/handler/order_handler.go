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

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// LineItemPayload is one product position of an incoming order.
type LineItemPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice int64  `json:"price_per_unit" validate:"gte=0"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	UserID      string            `json:"user_id" validate:"required"`
	OrderDate   time.Time         `json:"order_date" validate:"required"`
	TotalAmount int64             `json:"total_amount" validate:"gte=0"`
	Status      string            `json:"status" validate:"required"`
	Items       []LineItemPayload `json:"products" validate:"required,min=1,dive"`
}

// CreateOrder handles creating a new order record
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid user ID format")
	}

	items := make([]entity.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid product ID format")
		}

		items = append(items, entity.LineItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order := &entity.Order{
		UserID:      userID,
		OrderDate:   req.OrderDate,
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		Items:       items,
	}

	created, err := h.orderUC.PlaceOrder(c.Request().Context(), order)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return response.BadRequest(c, domainerrors.ErrOrderUserInvalid.ErrorCode(), domainerrors.ErrOrderUserInvalid.Message())
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, created, "Order created successfully")
}

// GetOrder handles retrieving an order by ID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid order ID format")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return response.NotFound(c, domainerrors.ErrOrderNotFound.ErrorCode(), domainerrors.ErrOrderNotFound.Message())
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}
