package cmds

import (
	"context"
	"fmt"
	"log/slog"

	sloggorm "github.com/orandin/slog-gorm"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormtracing "gorm.io/plugin/opentelemetry/tracing"

	"github.com/judgebase/judgebase-api/internal/config"
	"github.com/judgebase/judgebase-api/internal/logger"
)

func openDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	_, span := tracer.Start(ctx, "openDB")
	defer span.End()

	gormLogger := slog.New(logger.Handler)

	sg := sloggorm.New(
		sloggorm.WithHandler(gormLogger.Handler()),
		sloggorm.SetLogLevel(sloggorm.DefaultLogType, slog.Level(cfg.Logging.Gorm.Level)),
	)
	if cfg.Logging.Gorm.TraceQueries {
		sg = sloggorm.New(
			sloggorm.WithHandler(gormLogger.Handler()),
			sloggorm.WithTraceAll(),
			sloggorm.SetLogLevel(sloggorm.DefaultLogType, slog.Level(cfg.Logging.Gorm.Level)),
		)
	}

	span.AddEvent("initialized gorm logging")

	db, err := gorm.Open(
		postgres.Open(cfg.PostgresDSN()),
		&gorm.Config{Logger: sg, TranslateError: true},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to initialize database")
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to acquire underlying database connection")
		return nil, fmt.Errorf("failed to acquire underlying database connection: %w", err)
	}

	// Configure db connection pool
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConnections)
	sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnectionTTL)

	span.AddEvent("initialized database connection")

	err = db.Use(gormtracing.NewPlugin())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to add otel plugin to gorm")
		return nil, fmt.Errorf("failed to add otel plugin to gorm: %w", err)
	}

	span.AddEvent("added the otel plugin to gorm")

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
