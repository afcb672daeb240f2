// Command migrate applies the GORM schema migrations for the reporting
// service. It is run once per deploy, before the service starts.
package main

import (
	"log/slog"
	"os"

	"insight/config"
	logs "insight/internal/infra/log"
	"insight/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		slog.Error("Failed to create logger", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.ProductModel{},
	); err != nil {
		logger.Error("Failed to migrate schema", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Schema migration complete")
}
