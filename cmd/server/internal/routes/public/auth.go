package public

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/token"
	"github.com/judgebase/judgebase-api/internal/types"
)

type authenticateFunc func(ctx context.Context, email, password string) (*workflow.Authentication, error)

func (h *Handler) LoginJudge(c echo.Context) error {
	return h.login(c, "LoginJudge", token.RoleJudge, h.engine.AuthenticateJudge)
}

func (h *Handler) LoginOrganizer(c echo.Context) error {
	return h.login(c, "LoginOrganizer", token.RoleOrganizer, h.engine.AuthenticateOrganizer)
}

// Wrong credentials are a 200 with authenticated false, a token is only
// issued on success
func (h *Handler) login(c echo.Context, spanName string, role token.Role, authenticate authenticateFunc) error {
	ctx, span := tracer.Start(c.Request().Context(), spanName)
	defer span.End()

	type requestData struct {
		types.LoginRequest
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

	auth, err := authenticate(ctx, rdata.Email, rdata.Password)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to authenticate")
	}

	if !auth.Authenticated {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "bad credentials")
		return c.JSON(http.StatusOK, types.AuthResponse{Authenticated: false})
	}

	signed, err := h.tokens.Issue(auth.Subject, role)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to issue token")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.AuthResponse{Authenticated: true, Token: signed})
}
