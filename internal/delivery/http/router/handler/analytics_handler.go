package handler

import (
	"log/slog"
	"net/http"

	"insight/internal/delivery/http/response"
	domainerrors "insight/internal/domain/errors"
	"insight/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler exposes the reporting pipelines over HTTP.
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// TopSellingProducts returns the best sellers of the recent sales window.
func (h *AnalyticsHandler) TopSellingProducts(c echo.Context) error {
	report, err := h.analyticsUC.TopSellingProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Top selling products retrieved successfully")
}

// HighValueUsers returns users whose lifetime spend exceeds the threshold.
func (h *AnalyticsHandler) HighValueUsers(c echo.Context) error {
	report, err := h.analyticsUC.HighValueUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "High value users retrieved successfully")
}

// ReferralChain returns the transitive referral tree of one user.
func (h *AnalyticsHandler) ReferralChain(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, domainerrors.ErrInvalidIdentifier.ErrorCode(), "Invalid user ID format")
	}

	report, err := h.analyticsUC.ReferralChain(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Referral chain retrieved successfully")
}

// PremiumRetention returns the premium member retention figures.
func (h *AnalyticsHandler) PremiumRetention(c echo.Context) error {
	report, err := h.analyticsUC.PremiumRetention(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Premium retention retrieved successfully")
}

// ProjectedStock returns per-product stock projections at recent sales rates.
func (h *AnalyticsHandler) ProjectedStock(c echo.Context) error {
	report, err := h.analyticsUC.ProjectedStock(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Projected stock retrieved successfully")
}

// CancellationAbuse returns users who canceled more orders than tolerated.
func (h *AnalyticsHandler) CancellationAbuse(c echo.Context) error {
	report, err := h.analyticsUC.CancellationAbuse(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Cancellation abuse report retrieved successfully")
}
