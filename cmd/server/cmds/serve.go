package cmds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	servermiddleware "github.com/judgebase/judgebase-api/cmd/server/internal/middleware"
	"github.com/judgebase/judgebase-api/cmd/server/internal/migrations"
	"github.com/judgebase/judgebase-api/cmd/server/internal/routes"
	"github.com/judgebase/judgebase-api/cmd/server/internal/routes/admin"
	"github.com/judgebase/judgebase-api/cmd/server/internal/routes/portal"
	"github.com/judgebase/judgebase-api/cmd/server/internal/routes/public"
	"github.com/judgebase/judgebase-api/cmd/server/internal/session"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/config"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/otel"
	"github.com/judgebase/judgebase-api/internal/token"
)

type server struct {
	router       *echo.Echo
	config       *config.Config
	db           *gorm.DB
	redis        *redis.Client
	otelShutdown func(context.Context) error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (the default command)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	server, err := initServer(ctx, cfg)
	if err != nil {
		return err
	}

	errch := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Got shutdown signal!")
		errch <- server.Shutdown()
		close(errch)
	}()

	if err := server.Start(); err != nil {
		return err
	}

	if err := <-errch; err != nil {
		logger.Logger.Error("Error shutting down server", "error", err)
	}

	return nil
}

func sessionStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (session.Store, *redis.Client, error) {
	if cfg.Session.RedisAddr == "" {
		logger.Logger.Info("keeping admin sessions in postgres")
		return session.NewDBStore(db), nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.RedisAddr,
		Password: cfg.Session.RedisPassword,
		DB:       cfg.Session.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("failed to reach redis: %w", err), rdb.Close())
	}

	return session.NewRedisStore(session.RedisStoreConfig{RedisClient: rdb}), rdb, nil
}

type routerDeps struct {
	engine   *workflow.Engine
	sessions session.Store
	admins   *session.AdminAuthenticator
	tokens   *token.Issuer
	gatherer prometheus.Gatherer
}

func buildRouter(cfg *config.Config, deps routerDeps) (*echo.Echo, error) {
	var origins []string
	if cfg.CORS != nil {
		origins = cfg.CORS.AllowedOrigins
	}

	e, err := routes.BuildEcho(logger.Logger, origins, deps.gatherer)
	if err != nil {
		return nil, err
	}

	middlewareHandler := servermiddleware.Handler{
		Sessions:   deps.sessions,
		Tokens:     deps.tokens,
		CookieName: cfg.Session.CookieName,
	}
	publicHandler := public.NewHandler(deps.engine, deps.tokens)
	adminHandler := admin.NewHandler(deps.engine, deps.sessions, deps.admins, admin.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		TTL:    cfg.Admin.SessionTTL,
	})
	portalHandler := portal.NewHandler(deps.engine)

	publicHandler.AddRoutes(e)
	adminHandler.AddRoutes(e, &middlewareHandler)
	portalHandler.AddRoutes(e, &middlewareHandler)

	return e, nil
}

func initServer(ctx context.Context, cfg *config.Config) (*server, error) {
	server := new(server)
	server.config = cfg

	shutdownOTel, err := otel.SetupOTelSDK(ctx, otel.Exporter(cfg.Logging.Exporter), version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OTEL SDK: %w", err)
	}
	defer func() {
		// Something failed to initialize, make sure everything gets flushed to the server
		if server.otelShutdown == nil {
			otelShutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				time.Second*time.Duration(cfg.GracefulShutdownSecs),
			)
			defer cancel()

			if err = shutdownOTel(otelShutdownCtx); err != nil {
				logger.Logger.Error("failed to flush otel data", "error", err)
			}
		}
	}()

	ctx, span := tracer.Start(ctx, "initServer")
	defer span.End()

	db, err := openDB(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open database")
		return nil, err
	}

	err = migrations.Up(ctx, db)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to preform database migrations")
		return nil, fmt.Errorf("failed to perform database migrations: %w", err)
	}

	span.AddEvent("migrated database to latest version")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(registry)

	engine, err := buildEngine(ctx, cfg, db)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build workflow engine")
		return nil, err
	}

	span.AddEvent("initialized workflow engine")

	sessions, rdb, err := sessionStore(ctx, cfg, db)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to initialize session store")
		return nil, err
	}

	admins, err := session.NewAdminAuthenticator(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash admin password")
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	e, err := buildRouter(cfg, routerDeps{
		engine:   engine,
		sessions: sessions,
		admins:   admins,
		tokens:   token.NewIssuer(cfg.Token.Secret, cfg.Token.TTL),
		gatherer: registry,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "error building router")
		return nil, fmt.Errorf("error building router: %w", err)
	}

	span.AddEvent("created echo router")

	server.otelShutdown = shutdownOTel
	server.router = e
	server.db = db
	server.redis = rdb

	return server, nil
}

func (s *server) Start() error {
	logger.Logger.Info("Starting services...", "address", s.config.ListenAddress, "version", version)

	err := s.router.Start(s.config.ListenAddress)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *server) Shutdown() error {
	var errs error

	ctx, cancelTimeout := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(s.config.GracefulShutdownSecs),
	)
	defer cancelTimeout()

	if err := s.router.Shutdown(ctx); err != nil {
		errs = errors.Join(errs, err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := closeDB(s.db); err != nil {
		errs = errors.Join(errs, fmt.Errorf("failed to close database: %w", err))
	}

	if s.otelShutdown != nil {
		errs = errors.Join(errs, s.otelShutdown(ctx))
	}

	return errs
}
