package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) Hackathons(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Hackathons")
	defer span.End()

	status, err := statusFilter(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Ok, "bad status filter")
		return err
	}

	hackathons, err := h.engine.Hackathons(ctx, status)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list hackathons")
	}

	views := make([]types.HackathonView, 0, len(hackathons))
	for i := range hackathons {
		views = append(views, hackathons[i].View(true))
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) ApproveHackathon(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ApproveHackathon")
	defer span.End()

	id, err := pathID(c, span, hackathonKey)
	if err != nil {
		return err
	}

	approval, err := h.engine.ApproveHackathon(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to approve hackathon")
	}
	span.SetAttributes(attribute.String("run.state", string(approval.Run.State)))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.ApproveHackathonResponse{
		Hackathon:         approval.Hackathon.View(true),
		GeneratedPassword: approval.GeneratedPassword,
		SideEffects:       approval.SideEffects,
	})
}

func (h *Handler) RejectHackathon(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RejectHackathon")
	defer span.End()

	id, err := pathID(c, span, hackathonKey)
	if err != nil {
		return err
	}

	hackathon, err := h.engine.RejectHackathon(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to reject hackathon")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, hackathon.View(true))
}

func (h *Handler) InviteJudges(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "InviteJudges")
	defer span.End()

	id, err := pathID(c, span, hackathonKey)
	if err != nil {
		return err
	}

	type requestData struct {
		types.InviteJudgesRequest
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

	result, err := h.engine.InviteJudgesToHackathon(ctx, id, rdata.JudgeIDs, rdata.Message)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to invite judges")
	}

	span.SetAttributes(
		attribute.Int("invite.success", result.SuccessCount),
		attribute.Int("invite.failed", result.FailedCount),
	)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.InviteResponse{
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
	})
}

func (h *Handler) HackathonInvitations(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "HackathonInvitations")
	defer span.End()

	id, err := pathID(c, span, hackathonKey)
	if err != nil {
		return err
	}

	invitations, err := h.engine.HackathonInvitations(ctx, id)
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
