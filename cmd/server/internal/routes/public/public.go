// Package public serves the unauthenticated part of the API: submissions,
// the judge directory and the portal logins.
package public

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/token"
)

const name = "github.com/judgebase/judgebase-api/cmd/server/internal/routes/public"

var tracer = otel.Tracer(name)

type Handler struct {
	engine *workflow.Engine
	tokens *token.Issuer
}

func NewHandler(engine *workflow.Engine, tokens *token.Issuer) Handler {
	return Handler{engine: engine, tokens: tokens}
}

func (h *Handler) AddRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/applications/", h.SubmitApplication)

	api.GET("/hackathons/", h.Hackathons)
	api.POST("/hackathons/", h.SubmitHackathon)

	judges := api.Group("/judges")
	judges.GET("/", h.Judges)
	judges.GET("/featured/", h.FeaturedJudges)
	judges.GET("/search/", h.SearchJudges)
	judges.GET("/:slug/", h.JudgeBySlug)

	auth := api.Group("/auth")
	auth.POST("/judge/", h.LoginJudge)
	auth.POST("/organizer/", h.LoginOrganizer)
}
