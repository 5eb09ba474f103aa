// Package session keeps admin panel sessions and checks admin credentials.
//
// Cookies carry a random token. Stores only ever see its sha256 so a leaked
// store does not leak live sessions.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/cmd/server/internal/session")

var ErrEmptyToken = errors.New("empty session token")

type Store interface {
	// Starts a session valid for ttl and returns its token
	Create(ctx context.Context, ttl time.Duration) (string, error)
	// Unknown and expired tokens are not valid, neither is an error
	Valid(ctx context.Context, token string) (bool, error)
	// Deleting an unknown token is not an error
	Delete(ctx context.Context, token string) error
}

func newToken() string {
	return rand.Text()
}
