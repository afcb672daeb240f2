// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"insight/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	OrderHandler     *handler.OrderHandler
	ProductHandler   *handler.ProductHandler
	AnalyticsHandler *handler.AnalyticsHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler      *handler.UserHandler
	orderHandler     *handler.OrderHandler
	productHandler   *handler.ProductHandler
	analyticsHandler *handler.AnalyticsHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		orderHandler:     params.OrderHandler,
		productHandler:   params.ProductHandler,
		analyticsHandler: params.AnalyticsHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Collection routes
	userGroup := e.Group("/users")
	{
		userGroup.POST("", r.userHandler.CreateUser)
		userGroup.GET("/:id", r.userHandler.GetUser)
	}

	orderGroup := e.Group("/orders")
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
	}

	productGroup := e.Group("/products")
	{
		productGroup.POST("", r.productHandler.CreateProduct)
		productGroup.GET("/:id", r.productHandler.GetProduct)
	}

	// Reporting pipelines
	analyticsGroup := e.Group("/analytics")
	{
		analyticsGroup.GET("/top-products", r.analyticsHandler.TopSellingProducts)
		analyticsGroup.GET("/high-value-users", r.analyticsHandler.HighValueUsers)
		analyticsGroup.GET("/users/:id/referral-chain", r.analyticsHandler.ReferralChain)
		analyticsGroup.GET("/premium-retention", r.analyticsHandler.PremiumRetention)
		analyticsGroup.GET("/projected-stock", r.analyticsHandler.ProjectedStock)
		analyticsGroup.GET("/cancellation-abuse", r.analyticsHandler.CancellationAbuse)
	}
}
