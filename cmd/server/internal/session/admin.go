package session

import (
	"context"
	"crypto/subtle"

	"github.com/alexedwards/argon2id"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/metrics"
)

// Checks the single admin account from config. The password is kept as an
// argon2id hash so every attempt costs the same.
type AdminAuthenticator struct {
	username string
	hash     string
}

func NewAdminAuthenticator(username, password string) (*AdminAuthenticator, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, err
	}

	return &AdminAuthenticator{username: username, hash: hash}, nil
}

func (a *AdminAuthenticator) Check(ctx context.Context, username, password string) (bool, error) {
	_, span := tracer.Start(ctx, "AdminAuthenticator.Check")
	defer span.End()

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	// compare even for a wrong username so both failures take as long
	passOK, err := argon2id.ComparePasswordAndHash(password, a.hash)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compare password")
		return false, err
	}

	ok := userOK && passOK
	if ok {
		metrics.AdminLogins.WithLabelValues("success").Inc()
		span.AddEvent("successful login attempt")
	} else {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		span.AddEvent("failed login attempt")
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "checked admin credentials")
	return ok, nil
}
