package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) IncompleteApprovals(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "IncompleteApprovals")
	defer span.End()

	runs, err := h.engine.IncompleteApprovals(ctx)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list incomplete approvals")
	}

	views := make([]types.ApprovalRunView, 0, len(runs))
	for i := range runs {
		views = append(views, runs[i].View())
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) RepairApproval(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "RepairApproval")
	defer span.End()

	id, err := pathID(c, span, runKey)
	if err != nil {
		return err
	}

	repair, err := h.engine.RepairApproval(ctx, id)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to repair approval")
	}
	span.SetAttributes(attribute.String("run.state", string(repair.Run.State)))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, types.RepairResponse{
		Run:               repair.Run.View(),
		GeneratedPassword: repair.GeneratedPassword,
		SideEffects:       repair.SideEffects,
	})
}

func (h *Handler) Stats(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Stats")
	defer span.End()

	stats, err := h.engine.Stats(ctx)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to compute stats")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, stats)
}
