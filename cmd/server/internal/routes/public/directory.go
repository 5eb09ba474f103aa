package public

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/types"
)

func (h *Handler) Judges(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Judges")
	defer span.End()

	judges, err := h.engine.PublicJudges(ctx)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list judges")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeViews(ctx, judges, false))
}

func (h *Handler) FeaturedJudges(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "FeaturedJudges")
	defer span.End()

	judges, err := h.engine.FeaturedJudges(ctx)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list featured judges")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeViews(ctx, judges, false))
}

func (h *Handler) SearchJudges(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "SearchJudges")
	defer span.End()

	query := c.QueryParam("q")
	span.SetAttributes(attribute.String("query", query))

	judges, err := h.engine.SearchJudges(ctx, query)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to search judges")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeViews(ctx, judges, false))
}

func (h *Handler) JudgeBySlug(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "JudgeBySlug")
	defer span.End()

	judge, err := h.engine.JudgeBySlug(ctx, c.Param("slug"))
	if err != nil {
		return response.Fail(ctx, span, err, "failed to get judge")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, h.engine.JudgeView(ctx, judge, false))
}

func (h *Handler) Hackathons(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Hackathons")
	defer span.End()

	hackathons, err := h.engine.Hackathons(ctx, types.ReviewStatusApproved)
	if err != nil {
		return response.Fail(ctx, span, err, "failed to list hackathons")
	}

	views := make([]types.HackathonView, 0, len(hackathons))
	for i := range hackathons {
		views = append(views, hackathons[i].View(false))
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "")
	return c.JSON(http.StatusOK, views)
}
