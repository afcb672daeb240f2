package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"insight/config"
	"insight/internal/delivery"
	"insight/internal/delivery/http"
	"insight/internal/delivery/http/router/handler"
	"insight/internal/domain/service"
	"insight/internal/infra/cache"
	logs "insight/internal/infra/log"
	"insight/internal/infra/persistence/postgres"
	"insight/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewOrderRepository,
			postgres.NewProductRepository,
			postgres.NewAnalyticsRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newReportCache,
		),
	)
}

// newReportCache creates the redis report cache with dependency injection
func newReportCache(ctx context.Context, cfg *config.Config) (service.ReportCache, error) {
	if cfg.Redis == nil {
		return nil, nil // Report caching is optional
	}

	reportCache, err := cache.NewReportCache(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	return reportCache, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewOrderService,
			impl.NewProductService,
			impl.NewAnalyticsService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewOrderHandler,
			handler.NewProductHandler,
			handler.NewAnalyticsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
