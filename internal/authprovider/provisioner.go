package authprovider

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/internal/authprovider")

var (
	// The identity provider already has an account for the email
	ErrUserExists = errors.New("identity already exists")
	ErrNotFound   = errors.New("identity not found")
	// No identity provider configured, provisioning is skipped
	ErrNotConfigured = errors.New("identity provider not configured")
)

// Opaque user id assigned by the identity provider
type Handle string

//go:generate mockgen -destination ./mock/mock.go -package mock . Provisioner

// Creates login identities for approved judges. Confirmed on creation, no
// verification email round trip.
type Provisioner interface {
	CreateUser(ctx context.Context, email, password string) (Handle, error)
	LookupUser(ctx context.Context, email string) (Handle, error)
	UpdatePassword(ctx context.Context, handle Handle, password string) error
}

// Ensure Noop implements Provisioner interface.
var _ Provisioner = (*Noop)(nil)

// Used when no identity provider is configured
type Noop struct {
	logger *slog.Logger
}

func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) CreateUser(ctx context.Context, email, _ string) (Handle, error) {
	n.logger.WarnContext(ctx, "identity provider not configured, skipping account creation", "email", email)
	return "", ErrNotConfigured
}

func (n *Noop) LookupUser(ctx context.Context, email string) (Handle, error) {
	n.logger.WarnContext(ctx, "identity provider not configured, skipping lookup", "email", email)
	return "", ErrNotConfigured
}

func (n *Noop) UpdatePassword(ctx context.Context, handle Handle, _ string) error {
	n.logger.WarnContext(ctx, "identity provider not configured, skipping password update", "handle", handle)
	return ErrNotConfigured
}
