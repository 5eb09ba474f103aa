package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		cookie.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	return cookie
}

func (h *Handler) Login(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Login")
	defer span.End()

	type requestData struct {
		types.AdminLoginRequest
	}
	var rdata requestData

	span.AddEvent("parsing request body")
	err := c.Bind(&rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse request data")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("failed to parse request data"),
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	ok, err := h.admins.Check(ctx, rdata.Username, rdata.Password)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to check admin credentials")
	}
	if !ok {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "bad credentials")
		return response.UnauthorizedError
	}

	sessionToken, err := h.sessions.Create(ctx, h.cookie.TTL)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to create session")
	}

	c.SetCookie(h.sessionCookie(sessionToken, int(h.cookie.TTL.Seconds())))
	metrics.AdminLogins.WithLabelValues("success").Inc()

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.SessionResponse{Authenticated: true})
}

// Always clears the cookie, the stored session is removed when there is one
func (h *Handler) Logout(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Logout")
	defer span.End()

	if cookie, err := c.Cookie(h.cookie.Name); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(ctx, cookie.Value); err != nil {
			return response.Fail(ctx, span, err, "failed to delete session")
		}
	}

	c.SetCookie(h.sessionCookie("", -1))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.SessionResponse{Authenticated: false})
}

func (h *Handler) Session(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Session")
	defer span.End()

	cookie, err := c.Cookie(h.cookie.Name)
	if err != nil {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "no session cookie")
		return c.JSON(http.StatusOK, types.SessionResponse{Authenticated: false})
	}

	valid, err := h.sessions.Valid(ctx, cookie.Value)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to check session")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.SessionResponse{Authenticated: valid})
}
