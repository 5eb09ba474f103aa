package portal

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) Interests(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Interests")
	defer span.End()

	hackathonID, err := subject(c, span)
	if err != nil {
		return err
	}

	interests, err := h.engine.HackathonInterests(ctx, hackathonID)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list interests")
	}

	views := make([]types.InterestView, 0, len(interests))
	for i := range interests {
		v := interests[i].Interest.View()
		judge := h.engine.JudgeView(ctx, &interests[i].Judge, false)
		v.Judge = &judge
		views = append(views, v)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) UpdateInterest(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "UpdateInterest")
	defer span.End()

	hackathonID, err := subject(c, span)
	if err != nil {
		return err
	}

	judgeID, err := pathID(c, span, judgeKey)
	if err != nil {
		return err
	}

	type requestData struct {
		types.ResponseStatusRequest
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

	interest, err := h.engine.UpdateInterestStatus(ctx, judgeID, hackathonID, rdata.Status)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to update interest")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, interest.View())
}
