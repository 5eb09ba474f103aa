package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/internal/hash"
)

// Sessions in the admin_session table, used when no redis is configured
type DBStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db, now: time.Now}
}

// Creating a session also sweeps expired ones
func (s *DBStore) Create(ctx context.Context, ttl time.Duration) (string, error) {
	ctx, span := tracer.Start(ctx, "DBStore.Create")
	defer span.End()

	db := s.db.WithContext(ctx)
	now := s.now()

	if err := db.Where("expires_at <= ?", now).Delete(&models.AdminSession{}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sweep expired sessions")
		return "", err
	}

	token := newToken()
	err := db.Create(&models.AdminSession{
		TokenHash: hash.String(token),
		ExpiresAt: now.Add(ttl),
	}).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store session")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created session")
	return token, nil
}

func (s *DBStore) Valid(ctx context.Context, token string) (bool, error) {
	ctx, span := tracer.Start(ctx, "DBStore.Valid")
	defer span.End()

	if token == "" {
		return false, nil
	}

	ok, err := models.Exists[models.AdminSession](ctx, s.db,
		"token_hash = ? AND expires_at > ?", hash.String(token), s.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check session")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "checked session")
	return ok, nil
}

func (s *DBStore) Delete(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "DBStore.Delete")
	defer span.End()

	if token == "" {
		return ErrEmptyToken
	}

	err := s.db.WithContext(ctx).
		Where("token_hash = ?", hash.String(token)).
		Delete(&models.AdminSession{}).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete session")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "deleted session")
	return nil
}
