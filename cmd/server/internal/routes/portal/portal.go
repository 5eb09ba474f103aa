// Package portal serves the judge and organizer dashboards. Both are behind
// bearer tokens whose subject is the judge or hackathon id.
package portal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	servermiddleware "github.com/judgebase/judgebase-api/cmd/server/internal/middleware"
	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/token"
)

const name = "github.com/judgebase/judgebase-api/cmd/server/internal/routes/portal"

var tracer = otel.Tracer(name)

const (
	invitationKey = "invitation_id"
	judgeKey      = "judge_id"
)

type Handler struct {
	engine *workflow.Engine
}

func NewHandler(engine *workflow.Engine) Handler {
	return Handler{engine: engine}
}

func (h *Handler) AddRoutes(e *echo.Echo, middlewareHandler *servermiddleware.Handler) {
	judge := e.Group("/api/portal/judge", middlewareHandler.RequireToken(token.RoleJudge))
	judge.GET("/me/", h.Me)
	judge.GET("/invitations/", h.Invitations)
	judge.POST(
		"/invitations/:id/respond/",
		h.RespondToInvitation,
		servermiddleware.UUIDParam("id", invitationKey),
	)
	judge.POST("/interests/", h.ExpressInterest)

	organizer := e.Group("/api/portal/organizer", middlewareHandler.RequireToken(token.RoleOrganizer))
	organizer.GET("/interests/", h.Interests)
	organizer.PATCH(
		"/interests/:judge_id/",
		h.UpdateInterest,
		servermiddleware.UUIDParam("judge_id", judgeKey),
	)
}

// Judge or hackathon id the caller's token was issued for
func subject(c echo.Context, span trace.Span) (uuid.UUID, error) {
	claims, ok := c.Get(servermiddleware.ClaimsKey).(*token.Claims)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("claims: %s", srverr.ErrTypeAssertMismatch))
		return uuid.Nil, response.InternalServerError
	}

	id, err := claims.SubjectID()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad token subject")
		return uuid.Nil, response.UnauthorizedError
	}

	span.SetAttributes(
		attribute.String("subject", id.String()),
		attribute.String("role", string(claims.Role)),
	)
	return id, nil
}

func pathID(c echo.Context, span trace.Span, key string) (uuid.UUID, error) {
	id, ok := c.Get(key).(uuid.UUID)
	if !ok {
		span.RecordError(srverr.ErrTypeAssertMismatch)
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", key, srverr.ErrTypeAssertMismatch))
		return uuid.Nil, response.InternalServerError
	}
	span.SetAttributes(attribute.String(key, id.String()))
	return id, nil
}
