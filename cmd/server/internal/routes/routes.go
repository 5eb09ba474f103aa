package routes

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/judgebase/judgebase-api/internal/validator"
)

// Origins allowed to call the API with credentials. An empty list disables
// CORS headers entirely.
func corsMiddleware(allowedOrigins []string) echo.MiddlewareFunc {
	return echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}).Handler)
}

func BuildEcho(
	logger *slog.Logger,
	allowedOrigins []string,
	gatherer prometheus.Gatherer,
) (*echo.Echo, error) {
	e := echo.New()

	validate := validator.Create()
	e.Validator = &validate

	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == "/metrics" },
	}))

	e.Use(
		otelecho.Middleware("judgebase-api"),
		slogecho.NewWithConfig(logger, slogecho.Config{}),
	)
	if len(allowedOrigins) > 0 {
		e.Use(corsMiddleware(allowedOrigins))
	}

	e.GET("/health/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e, nil
}
