package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/credential"
	"github.com/judgebase/judgebase-api/internal/types"
)

// Outcome of a portal login. Subject is the judge or hackathon id.
type Authentication struct {
	Authenticated bool
	Subject       uuid.UUID
}

var (
	decoyOnce sync.Once
	decoyHash string
)

// Spends the time of a real verification when there is nothing to verify
func decoyVerify(password string) {
	decoyOnce.Do(func() {
		decoyHash, _ = credential.Hash("decoy password")
	})
	if decoyHash != "" {
		_, _ = credential.Verify(password, decoyHash)
	}
}

// First candidate whose stored hash matches password
func verifyAny(password string, ids []uuid.UUID, hashes []datatypes.Null[string]) (uuid.UUID, bool, error) {
	checked := false
	for i, h := range hashes {
		if !h.Valid {
			continue
		}
		checked = true

		ok, err := credential.Verify(password, h.V)
		if err != nil {
			return uuid.Nil, false, err
		}
		if ok {
			return ids[i], true, nil
		}
	}

	if !checked {
		decoyVerify(password)
	}
	return uuid.Nil, false, nil
}

// Checks judge portal credentials. Only approved judges can log in.
func (e *Engine) AuthenticateJudge(ctx context.Context, email, password string) (*Authentication, error) {
	ctx, span := tracer.Start(ctx, "AuthenticateJudge")
	defer span.End()

	judges, err := store.New[models.Judge](e.db).List(ctx,
		"lower(email) = ? AND status = ?", normalizeEmail(email), types.ReviewStatusApproved)
	if err != nil {
		return nil, fail(span, err, "failed to look up judge")
	}

	ids := make([]uuid.UUID, 0, len(judges))
	hashes := make([]datatypes.Null[string], 0, len(judges))
	for _, j := range judges {
		ids = append(ids, j.ID)
		hashes = append(hashes, j.AuthPasswordHash)
	}

	subject, ok, err := verifyAny(password, ids, hashes)
	if err != nil {
		return nil, fail(span, err, "failed to verify password")
	}

	span.SetAttributes(attribute.Bool("authenticated", ok))
	succeed(span, "checked judge credentials")
	return &Authentication{Authenticated: ok, Subject: subject}, nil
}

// Checks organizer dashboard credentials. Only approved hackathons have any.
func (e *Engine) AuthenticateOrganizer(ctx context.Context, email, password string) (*Authentication, error) {
	ctx, span := tracer.Start(ctx, "AuthenticateOrganizer")
	defer span.End()

	hackathons, err := store.New[models.Hackathon](e.db).List(ctx,
		"lower(organizer_email) = ? AND status = ?", normalizeEmail(email), types.ReviewStatusApproved)
	if err != nil {
		return nil, fail(span, err, "failed to look up hackathon")
	}

	ids := make([]uuid.UUID, 0, len(hackathons))
	hashes := make([]datatypes.Null[string], 0, len(hackathons))
	for _, h := range hackathons {
		ids = append(ids, h.ID)
		hashes = append(hashes, h.AuthPasswordHash)
	}

	subject, ok, err := verifyAny(password, ids, hashes)
	if err != nil {
		return nil, fail(span, err, "failed to verify password")
	}

	span.SetAttributes(attribute.Bool("authenticated", ok))
	succeed(span, "checked organizer credentials")
	return &Authentication{Authenticated: ok, Subject: subject}, nil
}
