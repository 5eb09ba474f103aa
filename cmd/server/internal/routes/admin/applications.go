package admin

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/types"
)

// Optional ?status= filter, empty means every status
func statusFilter(c echo.Context) (types.ReviewStatus, error) {
	status := types.ReviewStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, types.Error{
			Message: "validation error",
			Fields:  &map[string]string{"status": "must be pending, approved or rejected"},
		})
	}
	return status, nil
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

func (h *Handler) Applications(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Applications")
	defer span.End()

	status, err := statusFilter(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Ok, "bad status filter")
		return err
	}

	apps, err := h.engine.Applications(ctx, status)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list applications")
	}

	views := make([]types.ApplicationView, 0, len(apps))
	for i := range apps {
		views = append(views, apps[i].View())
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Application(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Application")
	defer span.End()

	id, err := pathID(c, span, applicationKey)
	if err != nil {
		return err
	}

	app, err := h.engine.Application(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to get application")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, app.View())
}

func (h *Handler) ApproveApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ApproveApplication")
	defer span.End()

	id, err := pathID(c, span, applicationKey)
	if err != nil {
		return err
	}

	type requestData struct {
		types.ApproveJudgeRequest
	}
	var rdata requestData

	span.AddEvent("parsing request body")
	err = c.Bind(&rdata)
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

	approval, err := h.engine.ApproveJudgeApplication(ctx, id, workflow.ApproveOptions{
		Featured: rdata.Featured,
		Badges:   rdata.Badges,
	})
	if err != nil {
		return response.Fail(ctx, span, err, "failed to approve application")
	}

	span.SetAttributes(
		attribute.String("judge.id", approval.Judge.ID.String()),
		attribute.String("run.state", string(approval.Run.State)),
	)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.ApproveJudgeResponse{
		Judge:             approval.Judge.View("", true),
		GeneratedPassword: approval.GeneratedPassword,
		SideEffects:       approval.SideEffects,
	})
}

func (h *Handler) RejectApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RejectApplication")
	defer span.End()

	id, err := pathID(c, span, applicationKey)
	if err != nil {
		return err
	}

	app, err := h.engine.RejectJudgeApplication(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to reject application")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, app.View())
}

func (h *Handler) ReviewApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ReviewApplication")
	defer span.End()

	id, err := pathID(c, span, applicationKey)
	if err != nil {
		return err
	}

	app, err := h.engine.ReviewAgain(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to move application back to review")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, app.View())
}
