package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgebase/judgebase-api/cmd/server/internal/response"
	"github.com/judgebase/judgebase-api/internal/token"
)

type fakeSessions struct {
	valid map[string]bool
	err   error
}

func (f *fakeSessions) Create(context.Context, time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeSessions) Valid(_ context.Context, token string) (bool, error) {
	return f.valid[token], f.err
}

func (f *fakeSessions) Delete(context.Context, string) error {
	return nil
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	sessions := &fakeSessions{valid: map[string]bool{"live": true}}
	h := &Handler{Sessions: sessions, CookieName: "judgebase_session"}

	run := func(cookie string) error {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats/", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "judgebase_session", Value: cookie})
		}
		return h.RequireAdmin(ok)(e.NewContext(req, httptest.NewRecorder()))
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, run("live"))
	})

	t.Run("MissingCookie", func(t *testing.T) {
		assert.Equal(t, response.UnauthorizedError, run(""))
	})

	t.Run("ExpiredOrUnknown", func(t *testing.T) {
		assert.Equal(t, response.UnauthorizedError, run("stale"))
	})

	t.Run("StoreDown", func(t *testing.T) {
		sessions.err = errors.New("redis down")
		defer func() { sessions.err = nil }()
		assert.Equal(t, response.InternalServerError, run("live"))
	})
}

func TestRequireToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	h := &Handler{Tokens: issuer}

	judgeID := uuid.New()
	judgeToken, err := issuer.Issue(judgeID, token.RoleJudge)
	require.NoError(t, err)

	run := func(header string) (echo.Context, error) {
		req := httptest.NewRequest(http.MethodGet, "/api/portal/judge/invitations/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		return c, h.RequireToken(token.RoleJudge)(ok)(c)
	}

	t.Run("Valid", func(t *testing.T) {
		c, err := run("Bearer " + judgeToken)
		require.NoError(t, err)

		claims, isClaims := c.Get(ClaimsKey).(*token.Claims)
		require.True(t, isClaims)
		id, err := claims.SubjectID()
		require.NoError(t, err)
		assert.Equal(t, judgeID, id)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := run("")
		assert.Equal(t, response.UnauthorizedError, err)
	})

	t.Run("NotBearer", func(t *testing.T) {
		_, err := run("Basic " + judgeToken)
		assert.Equal(t, response.UnauthorizedError, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := run("Bearer not.a.jwt")
		assert.Equal(t, response.UnauthorizedError, err)
	})

	t.Run("WrongRole", func(t *testing.T) {
		organizerToken, err := issuer.Issue(uuid.New(), token.RoleOrganizer)
		require.NoError(t, err)

		_, err = run("Bearer " + organizerToken)
		assert.Equal(t, response.ForbiddenError, err)
	})

	t.Run("OtherSecret", func(t *testing.T) {
		forged, err := token.NewIssuer("fedcba9876543210fedcba9876543210", time.Hour).
			Issue(judgeID, token.RoleJudge)
		require.NoError(t, err)

		_, err = run("Bearer " + forged)
		assert.Equal(t, response.UnauthorizedError, err)
	})
}

func TestUUIDParam(t *testing.T) {
	e := echo.New()
	id := uuid.New()

	run := func(raw string) (echo.Context, error) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c, UUIDParam("id", "id")(ok)(c)
	}

	c, err := run(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, c.Get("id"))

	_, err = run("nope")
	assert.Equal(t, response.NotFoundError, err)
}
