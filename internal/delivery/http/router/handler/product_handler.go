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

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for product-related handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Price       int64     `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Rating      int       `json:"rating" validate:"gte=0"`
	Tags        []string  `json:"tags"`
	Discount    int       `json:"discount" validate:"gte=0,lte=100"`
	LastUpdated time.Time `json:"last_updated"`
}

// CreateProduct handles creating a new catalog product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	product := &entity.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
		Tags:        req.Tags,
		Discount:    req.Discount,
		LastUpdated: req.LastUpdated,
	}
	if product.LastUpdated.IsZero() {
		product.LastUpdated = time.Now().UTC()
	}

	created, err := h.productUC.AddProduct(c.Request().Context(), product)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, created, "Product created successfully")
}

// GetProduct handles retrieving a product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid product ID format")
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return response.NotFound(c, domainerrors.ErrProductNotFound.ErrorCode(), domainerrors.ErrProductNotFound.Message())
		}

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}
