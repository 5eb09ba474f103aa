package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/search"
	"github.com/judgebase/judgebase-api/cmd/server/internal/store"
	"github.com/judgebase/judgebase-api/internal/types"
	"github.com/judgebase/judgebase-api/internal/upload"
)

// Every judge regardless of status, for the admin panel
func (e *Engine) Judges(ctx context.Context) ([]models.Judge, error) {
	ctx, span := tracer.Start(ctx, "Judges")
	defer span.End()

	judges, err := store.New[models.Judge](e.db).List(ctx)
	if err != nil {
		return nil, fail(span, err, "failed to list judges")
	}

	succeed(span, "listed judges")
	return judges, nil
}

func (e *Engine) PublicJudges(ctx context.Context) ([]models.Judge, error) {
	ctx, span := tracer.Start(ctx, "PublicJudges")
	defer span.End()

	judges, err := store.New[models.Judge](e.db).List(ctx, "status = ?", types.ReviewStatusApproved)
	if err != nil {
		return nil, fail(span, err, "failed to list judges")
	}

	succeed(span, "listed judges")
	return judges, nil
}

func (e *Engine) FeaturedJudges(ctx context.Context) ([]models.Judge, error) {
	ctx, span := tracer.Start(ctx, "FeaturedJudges")
	defer span.End()

	judges, err := store.New[models.Judge](e.db).List(ctx,
		"status = ? AND featured", types.ReviewStatusApproved)
	if err != nil {
		return nil, fail(span, err, "failed to list featured judges")
	}

	succeed(span, "listed featured judges")
	return judges, nil
}

// Public profile, judges that are not approved are reported as missing
func (e *Engine) JudgeBySlug(ctx context.Context, slug string) (*models.Judge, error) {
	ctx, span := tracer.Start(ctx, "JudgeBySlug")
	defer span.End()

	span.SetAttributes(attribute.String("slug", slug))

	j, err := store.New[models.Judge](e.db).BySecondaryKey(ctx, "slug", slug)
	if err != nil {
		return nil, fail(span, err, "failed to get judge")
	}
	if j.Status != types.ReviewStatusApproved {
		return nil, fail(span, fmt.Errorf("%w: judge", srverr.ErrNotFound), "judge not public")
	}

	succeed(span, "got judge")
	return j, nil
}

func (e *Engine) Judge(ctx context.Context, id uuid.UUID) (*models.Judge, error) {
	ctx, span := tracer.Start(ctx, "Judge")
	defer span.End()

	j, err := store.New[models.Judge](e.db).ByID(ctx, id)
	if err != nil {
		return nil, fail(span, err, "failed to get judge")
	}

	succeed(span, "got judge")
	return j, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Approved judges matching query, most relevant first. Uses the search
// index when there is one and falls back to a database scan otherwise.
func (e *Engine) SearchJudges(ctx context.Context, query string) ([]models.Judge, error) {
	ctx, span := tracer.Start(ctx, "SearchJudges")
	defer span.End()

	query = strings.TrimSpace(query)
	span.SetAttributes(attribute.String("query", query))
	if query == "" {
		return e.PublicJudges(ctx)
	}

	s := store.New[models.Judge](e.db)

	ids, err := e.indexer.SearchJudges(ctx, query, searchLimit)
	if err == nil {
		judges, err := s.List(ctx, "id IN ? AND status = ?", ids, types.ReviewStatusApproved)
		if err != nil {
			return nil, fail(span, err, "failed to load judges")
		}

		byID := make(map[uuid.UUID]models.Judge, len(judges))
		for _, j := range judges {
			byID[j.ID] = j
		}

		// index order is relevance order, stale hits are skipped
		out := make([]models.Judge, 0, len(judges))
		for _, id := range ids {
			if j, ok := byID[id]; ok {
				out = append(out, j)
			}
		}

		succeed(span, "searched index")
		return out, nil
	}
	if !errors.Is(err, search.ErrNotConfigured) {
		e.logger.WarnContext(ctx, "search index query failed, falling back to database", "error", err)
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"
	judges := []models.Judge{}
	err = e.db.WithContext(ctx).
		Where("status = ?", types.ReviewStatusApproved).
		Where(`(name ILIKE @p OR role ILIKE @p OR company ILIKE @p OR bio ILIKE @p OR expertise::text ILIKE @p)`,
			map[string]any{"p": pattern}).
		Order("featured DESC, name").
		Limit(searchLimit).
		Find(&judges).Error
	if err != nil {
		return nil, fail(span, err, "failed to search judges")
	}

	succeed(span, "searched database")
	return judges, nil
}

// Partial update from the admin panel. A featured judge must be approved.
// The slug stays put when the name changes so profile links keep working.
func (e *Engine) UpdateJudge(
	ctx context.Context,
	id uuid.UUID,
	req types.JudgeUpdateRequest,
) (*models.Judge, error) {
	ctx, span := tracer.Start(ctx, "UpdateJudge")
	defer span.End()

	span.SetAttributes(attribute.String("judge.id", id.String()))

	j, err := store.New[models.Judge](e.db).Update(ctx, id, func(j *models.Judge) error {
		if v, ok := req.Name.Get(); ok {
			j.Name = strings.TrimSpace(v)
		}
		if v, ok := req.Role.Get(); ok {
			j.Role = v
		}
		if v, ok := req.Company.Get(); ok {
			j.Company = v
		}
		if v, ok := req.Bio.Get(); ok {
			j.Bio = v
		}
		if v, ok := req.Philosophy.Get(); ok {
			j.Philosophy = v
		}
		if v, ok := req.Expertise.Get(); ok {
			j.Expertise = v
		}
		if v, ok := req.Badges.Get(); ok {
			j.Badges = v
		}
		if v, ok := req.Featured.Get(); ok {
			j.Featured = v
		}
		if v, ok := req.Status.Get(); ok {
			if !v.Valid() {
				return fmt.Errorf("%w: unknown status %q", srverr.ErrValidation, v)
			}
			j.Status = v
		}

		if j.Featured && j.Status != types.ReviewStatusApproved {
			return invalidState("featured judges must be approved")
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err, "failed to update judge")
	}

	if err := e.syncIndex(ctx, j); err != nil && !errors.Is(err, search.ErrNotConfigured) {
		e.logger.WarnContext(ctx, "failed to reindex judge", "judge", j.ID, "error", err)
	}

	succeed(span, "updated judge")
	return j, nil
}

// Hard delete, invitations and interests go with the judge
func (e *Engine) RemoveJudge(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "RemoveJudge")
	defer span.End()

	span.SetAttributes(attribute.String("judge.id", id.String()))

	s := store.New[models.Judge](e.db)
	j, err := s.ByID(ctx, id)
	if err != nil {
		return fail(span, err, "failed to get judge")
	}

	if err := s.Delete(ctx, id); err != nil {
		return fail(span, err, "failed to delete judge")
	}

	e.releasePhoto(ctx, j.PhotoKey)

	if err := e.indexer.RemoveJudge(ctx, id); err != nil && !errors.Is(err, search.ErrNotConfigured) {
		e.logger.WarnContext(ctx, "failed to remove judge from index", "judge", id, "error", err)
	}

	succeed(span, "removed judge")
	return nil
}

// Stores the photo and points the judge at it. Returns the object key and a
// presigned link for displaying it.
func (e *Engine) SetJudgePhoto(
	ctx context.Context,
	id uuid.UUID,
	data []byte,
	contentType string,
) (string, string, error) {
	ctx, span := tracer.Start(ctx, "SetJudgePhoto")
	defer span.End()

	span.SetAttributes(attribute.String("judge.id", id.String()))

	if e.photos == nil {
		return "", "", fail(span, fmt.Errorf("%w: photo storage", srverr.ErrNotConfigured), "no photo storage")
	}

	s := store.New[models.Judge](e.db)
	j, err := s.ByID(ctx, id)
	if err != nil {
		return "", "", fail(span, err, "failed to get judge")
	}

	key, err := upload.StorePhoto(ctx, e.photos, data, contentType)
	if errors.Is(err, upload.ErrUnsupportedType) {
		return "", "", fail(span, fmt.Errorf("%w: %w", srverr.ErrValidation, err), "bad photo")
	}
	if err != nil {
		return "", "", fail(span, fmt.Errorf("%w: %w", srverr.ErrExternalService, err), "failed to store photo")
	}

	if err := s.UpdateFields(ctx, id, map[string]any{"photo_key": key}); err != nil {
		return "", "", fail(span, err, "failed to save photo key")
	}
	if j.PhotoKey.Valid && j.PhotoKey.V != key {
		e.releasePhoto(ctx, j.PhotoKey)
	}

	url, err := e.PhotoURL(ctx, models.NewNullFromData(key))
	if err != nil {
		return "", "", fail(span, err, "failed to presign photo")
	}

	succeed(span, "set judge photo")
	return key, url, nil
}

// Deletes a photo object once no judge points at it. Keys are content
// hashes so judges with the same picture share one object. Failures leave
// an orphaned object behind and are only logged.
func (e *Engine) releasePhoto(ctx context.Context, key datatypes.Null[string]) {
	if !key.Valid || e.photos == nil {
		return
	}

	shared, err := models.Exists[models.Judge](ctx, e.db, "photo_key = ?", key.V)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to check photo references", "key", key.V, "error", err)
		return
	}
	if shared {
		return
	}

	if err := e.photos.Delete(ctx, key.V); err != nil {
		e.logger.WarnContext(ctx, "failed to delete photo", "key", key.V, "error", err)
	}
}

// Presigned link for a photo key, empty when there is no photo or storage
func (e *Engine) PhotoURL(ctx context.Context, key datatypes.Null[string]) (string, error) {
	if !key.Valid || e.photos == nil {
		return "", nil
	}

	url, err := e.photos.PresignedReadURL(ctx, key.V, PhotoURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", srverr.ErrExternalService, err)
	}
	return url, nil
}

// Renders a judge with a presigned photo link. A photo that cannot be signed
// is left out rather than failing the request.
func (e *Engine) JudgeView(ctx context.Context, j *models.Judge, admin bool) types.JudgeView {
	url, err := e.PhotoURL(ctx, j.PhotoKey)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to presign judge photo", "judge_id", j.ID, "error", err)
	}
	return j.View(url, admin)
}

func (e *Engine) JudgeViews(ctx context.Context, judges []models.Judge, admin bool) []types.JudgeView {
	views := make([]types.JudgeView, 0, len(judges))
	for i := range judges {
		views = append(views, e.JudgeView(ctx, &judges[i], admin))
	}
	return views
}
