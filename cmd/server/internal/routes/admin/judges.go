package admin

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
	"github.com/judgebase/judgebase-api/internal/validator"
)

func (h *Handler) Judges(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Judges")
	defer span.End()

	judges, err := h.engine.Judges(ctx)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list judges")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeViews(ctx, judges, true))
}

func (h *Handler) UpdateJudge(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateJudge")
	defer span.End()

	id, err := pathID(c, span, judgeKey)
	if err != nil {
		return err
	}

	type requestData struct {
		types.JudgeUpdateRequest
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

	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	judge, err := h.engine.UpdateJudge(ctx, id, rdata.JudgeUpdateRequest)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to update judge")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeView(ctx, judge, true))
}

func (h *Handler) RemoveJudge(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RemoveJudge")
	defer span.End()

	id, err := pathID(c, span, judgeKey)
	if err != nil {
		return err
	}

	if err := h.engine.RemoveJudge(ctx, id); err != nil {
		return response.Fail(ctx, span, err, "failed to remove judge")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetJudgePhoto(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "SetJudgePhoto")
	defer span.End()

	id, err := pathID(c, span, judgeKey)
	if err != nil {
		return err
	}

	type requestData struct {
		types.PhotoUpload
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

	span.AddEvent("validating photo is within size limit")
	if !validator.ValidatePhotoSize(len(rdata.Photo)) {
		span.SetStatus(codes.Ok, "photo was too large")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.Error{Message: "validation error", Fields: &map[string]string{
				"photo": "must be <= 2mb",
			}},
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	span.AddEvent("decoding photo base64")
	photo, err := base64.StdEncoding.DecodeString(rdata.Photo)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to decode photo")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.Error{Message: "failed to decode base64", Fields: &map[string]string{
				"photo": "must be valid base64",
			}},
		)
	}

	key, url, err := h.engine.SetJudgePhoto(ctx, id, photo, rdata.ContentType)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to set judge photo")
	}
	span.SetAttributes(attribute.String("photo.key", key))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.PhotoResponse{Key: key, URL: url})
}
