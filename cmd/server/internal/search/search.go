// Package search keeps the public judge directory in a full text index.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/cmd/server/internal/search")

var ErrNotConfigured = errors.New("search index not configured")

// Indexed view of an approved judge
type Document struct {
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Bio       string    `json:"bio"`
	Expertise []string  `json:"expertise"`
	Badges    []string  `json:"badges"`
	Featured  bool      `json:"featured"`
}

//go:generate mockgen -destination ./mock/mock.go -package mock . Indexer

type Indexer interface {
	// Creates or replaces the judge's document
	IndexJudge(ctx context.Context, id uuid.UUID, doc Document) error
	// Removing a judge that was never indexed is not an error
	RemoveJudge(ctx context.Context, id uuid.UUID) error
	// Judge ids ordered by relevance
	SearchJudges(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
}

// Ensure Noop implements Indexer interface.
var _ Indexer = Noop{}

// Used when no search cluster is configured, callers fall back to the database
type Noop struct{}

func (Noop) IndexJudge(context.Context, uuid.UUID, Document) error {
	return ErrNotConfigured
}

func (Noop) RemoveJudge(context.Context, uuid.UUID) error {
	return ErrNotConfigured
}

func (Noop) SearchJudges(context.Context, string, int) ([]uuid.UUID, error) {
	return nil, ErrNotConfigured
}
