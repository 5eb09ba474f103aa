package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/token"
)

// Rejects requests without a live admin session cookie
func (h *Handler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "RequireAdmin")
		defer span.End()

		cookie, err := c.Cookie(h.CookieName)
		if err != nil {
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "no session cookie")
			return response.UnauthorizedError
		}

		ok, err := h.Sessions.Valid(ctx, cookie.Value)
		if err != nil {
			logger.Logger.ErrorContext(ctx, "failed to check admin session", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to check session")
			return response.InternalServerError
		}
		if !ok {
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "session not valid")
			return response.UnauthorizedError
		}

		span.RecordError(nil)
		span.SetStatus(codes.Ok, "admin session valid")
		return next(c)
	}
}

// Requires a bearer token issued for role and stores its claims under
// ClaimsKey
func (h *Handler) RequireToken(role token.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, span := tracer.Start(c.Request().Context(), "RequireToken", trace.WithAttributes(
				attribute.String("role", string(role)),
			))
			defer span.End()

			raw, found := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !found || raw == "" {
				span.RecordError(nil)
				span.SetStatus(codes.Ok, "no bearer token")
				return response.UnauthorizedError
			}

			claims, err := h.Tokens.Parse(raw)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Ok, "invalid token")
				return response.UnauthorizedError
			}

			if claims.Role != role {
				span.RecordError(nil)
				span.SetStatus(codes.Ok, "wrong role")
				return response.ForbiddenError
			}

			if _, err := claims.SubjectID(); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Ok, "bad subject")
				return response.UnauthorizedError
			}

			span.SetAttributes(attribute.String("subject", claims.Subject))
			c.Set(ClaimsKey, claims)

			span.RecordError(nil)
			span.SetStatus(codes.Ok, "token valid")
			return next(c)
		}
	}
}
