package portal

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) Me(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Me")
	defer span.End()

	judgeID, err := subject(c, span)
	if err != nil {
		return err
	}

	judge, err := h.engine.Judge(ctx, judgeID)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to get judge")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeView(ctx, judge, true))
}

func (h *Handler) Invitations(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Invitations")
	defer span.End()

	judgeID, err := subject(c, span)
	if err != nil {
		return err
	}

	invitations, err := h.engine.JudgeInvitations(ctx, judgeID)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list invitations")
	}

	views := make([]types.InvitationView, 0, len(invitations))
	for i := range invitations {
		views = append(views, invitations[i].View())
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) RespondToInvitation(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RespondToInvitation")
	defer span.End()

	judgeID, err := subject(c, span)
	if err != nil {
		return err
	}

	invitationID, err := pathID(c, span, invitationKey)
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

	invitation, err := h.engine.RespondToInvitation(ctx, judgeID, invitationID, rdata.Status)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to respond to invitation")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, invitation.View())
}

func (h *Handler) ExpressInterest(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ExpressInterest")
	defer span.End()

	judgeID, err := subject(c, span)
	if err != nil {
		return err
	}

	type requestData struct {
		types.ExpressInterestRequest
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

	// validated as a uuid above
	hackathonID := uuid.MustParse(rdata.HackathonID)

	interest, err := h.engine.ExpressInterest(ctx, judgeID, hackathonID, rdata.Message)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to express interest")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusCreated, interest.View())
}
