package public

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) SubmitApplication(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "SubmitApplication")
	defer span.End()

	type requestData struct {
		types.JudgeApplicationSubmission
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

	app, err := h.engine.SubmitApplication(ctx, rdata.JudgeApplicationSubmission)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to submit application")
	}
	span.SetAttributes(attribute.String("application.id", app.ID.String()))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusCreated, app.View())
}

func (h *Handler) SubmitHackathon(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "SubmitHackathon")
	defer span.End()

	type requestData struct {
		types.HackathonSubmission
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

	hackathon, err := h.engine.SubmitHackathon(ctx, rdata.HackathonSubmission)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to submit hackathon")
	}
	span.SetAttributes(attribute.String("hackathon.id", hackathon.ID.String()))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusCreated, hackathon.View(false))
}
