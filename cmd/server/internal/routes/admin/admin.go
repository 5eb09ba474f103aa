// Package admin serves the admin console API behind the session cookie.
package admin

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	servermiddleware "github.com/judgebase/judgebase-api/cmd/server/internal/middleware"
	"github.com/judgebase/judgebase-api/cmd/server/internal/session"
	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
)

const name = "github.com/judgebase/judgebase-api/cmd/server/internal/routes/admin"

var tracer = otel.Tracer(name)

// Context keys for parsed path ids
const (
	applicationKey = "application_id"
	hackathonKey   = "hackathon_id"
	judgeKey       = "judge_id"
	runKey         = "run_id"
)

type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Handler struct {
	engine   *workflow.Engine
	sessions session.Store
	admins   *session.AdminAuthenticator
	cookie   CookieConfig
}

func NewHandler(
	engine *workflow.Engine,
	sessions session.Store,
	admins *session.AdminAuthenticator,
	cookie CookieConfig,
) Handler {
	return Handler{engine: engine, sessions: sessions, admins: admins, cookie: cookie}
}

func (h *Handler) AddRoutes(e *echo.Echo, middlewareHandler *servermiddleware.Handler) {
	admin := e.Group("/api/admin")

	admin.POST("/login/", h.Login)
	admin.POST("/logout/", h.Logout)
	admin.GET("/session/", h.Session)

	admin.GET("/stats/", h.Stats, middlewareHandler.RequireAdmin)

	applications := admin.Group("/applications", middlewareHandler.RequireAdmin)
	applications.GET("/", h.Applications)
	application := applications.Group(
		"/:id",
		servermiddleware.UUIDParam("id", applicationKey),
	)
	application.GET("/", h.Application)
	application.POST("/approve/", h.ApproveApplication)
	application.POST("/reject/", h.RejectApplication)
	application.POST("/review/", h.ReviewApplication)

	hackathons := admin.Group("/hackathons", middlewareHandler.RequireAdmin)
	hackathons.GET("/", h.Hackathons)
	hackathon := hackathons.Group(
		"/:id",
		servermiddleware.UUIDParam("id", hackathonKey),
	)
	hackathon.POST("/approve/", h.ApproveHackathon)
	hackathon.POST("/reject/", h.RejectHackathon)
	hackathon.POST("/invite/", h.InviteJudges)
	hackathon.GET("/invitations/", h.HackathonInvitations)

	judges := admin.Group("/judges", middlewareHandler.RequireAdmin)
	judges.GET("/", h.Judges)
	judge := judges.Group(
		"/:id",
		servermiddleware.UUIDParam("id", judgeKey),
	)
	judge.PATCH("/", h.UpdateJudge)
	judge.DELETE("/", h.RemoveJudge)
	judge.PUT("/photo/", h.SetJudgePhoto)

	approvals := admin.Group("/approvals", middlewareHandler.RequireAdmin)
	approvals.GET("/incomplete/", h.IncompleteApprovals)
	approvals.POST(
		"/:id/repair/",
		h.RepairApproval,
		servermiddleware.UUIDParam("id", runKey),
	)
}
