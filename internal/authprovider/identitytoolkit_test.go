package authprovider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/judgebase/judgebase-api/internal/authprovider"
	"github.com/judgebase/judgebase-api/internal/logger"
)

type fakeIdentityServer struct {
	users    map[string]string // email -> localId
	password map[string]string // localId -> password
	calls    []string
}

func (f *fakeIdentityServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls = append(f.calls, r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer service-account-token" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": 401, "message": "CREDENTIAL_MISMATCH"}}`))
		return
	}

	if r.URL.Query().Get("key") != "test-key" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API_KEY_INVALID"}}`))
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch r.URL.Path {
	case "/v1/accounts:signUp":
		email, _ := body["email"].(string)
		if _, ok := f.users[email]; ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "EMAIL_EXISTS"}}`))
			return
		}
		id := "uid-" + email
		f.users[email] = id
		f.password[id], _ = body["password"].(string)
		_ = json.NewEncoder(w).Encode(map[string]string{"localId": id})
	case "/v1/accounts:lookup":
		emails, _ := body["email"].([]any)
		users := []map[string]string{}
		for _, e := range emails {
			if id, ok := f.users[e.(string)]; ok {
				users = append(users, map[string]string{"localId": id})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"users": users})
	case "/v1/accounts:update":
		id, _ := body["localId"].(string)
		if _, ok := f.password[id]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "USER_NOT_FOUND"}}`))
			return
		}
		f.password[id], _ = body["password"].(string)
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestIdentityToolkit(t *testing.T) {
	fake := &fakeIdentityServer{users: map[string]string{}, password: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "service-account-token"})
	p, err := authprovider.NewIdentityToolkit(srv.URL, "test-key", tokens, logger.Logger)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("CreateUser", func(t *testing.T) {
		handle, err := p.CreateUser(ctx, "jane@example.com", "pw-1")
		require.NoError(t, err)
		assert.Equal(t, authprovider.Handle("uid-jane@example.com"), handle)
		assert.Equal(t, "pw-1", fake.password["uid-jane@example.com"])
	})

	t.Run("CreateUserExists", func(t *testing.T) {
		_, err := p.CreateUser(ctx, "jane@example.com", "pw-2")
		assert.ErrorIs(t, err, authprovider.ErrUserExists)
	})

	t.Run("LookupUser", func(t *testing.T) {
		handle, err := p.LookupUser(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, authprovider.Handle("uid-jane@example.com"), handle)

		_, err = p.LookupUser(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, authprovider.ErrNotFound)
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		require.NoError(t, p.UpdatePassword(ctx, "uid-jane@example.com", "pw-3"))
		assert.Equal(t, "pw-3", fake.password["uid-jane@example.com"])

		err := p.UpdatePassword(ctx, "uid-missing", "pw")
		assert.ErrorIs(t, err, authprovider.ErrNotFound)
	})

	t.Run("BadKey", func(t *testing.T) {
		bad, err := authprovider.NewIdentityToolkit(srv.URL, "wrong", tokens, logger.Logger)
		require.NoError(t, err)

		_, err = bad.CreateUser(ctx, "x@example.com", "pw")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API_KEY_INVALID")
	})

	t.Run("AdminCallsNeedBearerToken", func(t *testing.T) {
		anonymous := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "someone-else"})
		unauthorized, err := authprovider.NewIdentityToolkit(srv.URL, "test-key", anonymous, logger.Logger)
		require.NoError(t, err)

		err = unauthorized.UpdatePassword(ctx, "uid-jane@example.com", "pw-4")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CREDENTIAL_MISMATCH")
		assert.Equal(t, "pw-3", fake.password["uid-jane@example.com"])

		_, err = authprovider.NewIdentityToolkit(srv.URL, "test-key", nil, logger.Logger)
		assert.Error(t, err, "a token source is required")
	})

	t.Run("EmulatorToken", func(t *testing.T) {
		tok, err := authprovider.EmulatorTokenSource().Token()
		require.NoError(t, err)
		assert.Equal(t, "owner", tok.AccessToken)
		assert.Equal(t, "Bearer", tok.Type())
	})
}

func TestNoop(t *testing.T) {
	p := authprovider.NewNoop(logger.Logger)

	_, err := p.CreateUser(context.Background(), "jane@example.com", "pw")
	assert.ErrorIs(t, err, authprovider.ErrNotConfigured)

	assert.ErrorIs(t, p.UpdatePassword(context.Background(), "h", "pw"), authprovider.ErrNotConfigured)
}
