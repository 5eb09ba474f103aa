package cmds

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/cmd/server/internal/search"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/authprovider"
	"github.com/judgebase/judgebase-api/internal/config"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/notify"
	"github.com/judgebase/judgebase-api/internal/upload"
)

// Builds the workflow engine with every collaborator the config enables.
// Anything not configured is left to the engine's no-op fallback.
func buildEngine(ctx context.Context, cfg *config.Config, db *gorm.DB) (*workflow.Engine, error) {
	ctx, span := tracer.Start(ctx, "buildEngine")
	defer span.End()

	l := logger.Logger
	deps := workflow.Deps{AppURL: cfg.Mail.AppURL}

	if cfg.Identity != nil && cfg.Identity.Endpoint != "" {
		tokens := authprovider.EmulatorTokenSource()
		if !cfg.Identity.Emulator {
			var err error
			tokens, err = authprovider.DefaultTokenSource(ctx)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to load identity provider credentials")
				return nil, err
			}
		}

		provisioner, err := authprovider.NewIdentityToolkit(
			cfg.Identity.Endpoint,
			cfg.Identity.APIKey,
			tokens,
			logger.Component("authprovider"),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to construct identity provider client")
			return nil, fmt.Errorf("failed to construct identity provider client: %w", err)
		}
		deps.Provisioner = provisioner
		span.AddEvent("initialized identity provider client")
	} else {
		l.Warn("identity provider not configured, portal accounts will not be provisioned")
	}

	var mailer notify.Mailer
	if cfg.Mail.Endpoint != "" {
		httpMailer, err := notify.NewHTTPMailer(cfg.Mail.Endpoint, cfg.Mail.APIKey, logger.Component("mailer"))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to construct mailer")
			return nil, fmt.Errorf("failed to construct mailer: %w", err)
		}
		mailer = httpMailer
	} else {
		l.Warn("mail provider not configured, emails will be dropped")
		mailer = notify.NewNoopMailer(logger.Component("mailer"))
	}

	dispatcher, err := notify.NewDispatcher(mailer, cfg.Mail.From, logger.Component("notify"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct notification dispatcher")
		return nil, fmt.Errorf("failed to construct notification dispatcher: %w", err)
	}
	deps.Notifier = dispatcher

	span.AddEvent("initialized notification dispatcher")

	if len(cfg.Search.Addresses) > 0 {
		indexer, err := search.NewElasticIndexer(
			cfg.Search.Addresses,
			cfg.Search.Username,
			cfg.Search.Password,
			cfg.Search.Index,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to construct search client")
			return nil, err
		}

		// search falls back to postgres, a missing index is not fatal
		if err := indexer.EnsureIndex(ctx); err != nil {
			l.WarnContext(ctx, "failed to ensure judge index", "error", err)
		}
		deps.Indexer = indexer
		span.AddEvent("initialized search client")
	} else {
		l.Warn("search not configured, using postgres for judge search")
	}

	photos, err := buildPhotoStorage(cfg.Storage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct photo storage")
		return nil, fmt.Errorf("failed to construct photo storage: %w", err)
	}
	if photos == nil {
		l.Warn("photo storage not configured, photo uploads are disabled")
	} else {
		deps.Photos = photos
	}

	engine, err := workflow.New(db, deps)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct workflow engine")
		return nil, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return engine, nil
}

// Nil when no backend is configured
func buildPhotoStorage(cfg *config.StorageConfig) (upload.Uploader, error) {
	if cfg == nil || cfg.Backend == "" {
		return nil, nil
	}

	backoff := func() retry.Backoff {
		b := retry.NewFibonacci(time.Millisecond * 25)
		b = retry.WithMaxRetries(3, b)
		return b
	}

	switch cfg.Backend {
	case "minio":
		u, err := upload.NewMinioUploader(
			cfg.Minio.Endpoint,
			cfg.Minio.AccessKeyID,
			cfg.Minio.SecretAccessKey,
			cfg.Minio.SSLEnabled,
			cfg.Minio.Bucket,
		)
		if err != nil {
			return nil, err
		}
		return upload.NewRetryUploaderBackoff(u, backoff), nil
	case "azure":
		u, err := upload.NewAzureUploader(
			cfg.Azure.Account,
			cfg.Azure.Key,
			cfg.Azure.URL,
			cfg.Azure.Container,
		)
		if err != nil {
			return nil, err
		}
		return upload.NewRetryUploaderBackoff(u, backoff), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
