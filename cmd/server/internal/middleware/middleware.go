package middleware

import (
	"go.opentelemetry.io/otel"

	"github.com/judgebase/judgebase-api/cmd/server/internal/session"
	"github.com/judgebase/judgebase-api/internal/token"
)

const name string = "github.com/judgebase/judgebase-api/cmd/server/internal/middleware"

var tracer = otel.Tracer(name)

// Context keys set by the middlewares
const (
	ClaimsKey = "claims"
)

type Handler struct {
	Sessions   session.Store
	Tokens     *token.Issuer
	CookieName string
}
