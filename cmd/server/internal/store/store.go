// Package store is the CRUD contract over the gorm models. Missing rows map
// to srverr.ErrNotFound and unique violations to srverr.ErrConflict.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/cmd/server/internal/store")

type Store[T models.JudgeBaseModel] struct {
	db *gorm.DB
}

func New[T models.JudgeBaseModel](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

func (s *Store[T]) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("type", typeName[T]()))
	return tracer.Start(ctx, "Store."+op, trace.WithAttributes(attrs...))
}

// Maps gorm errors onto the server error taxonomy
func translate[T any](err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", srverr.ErrNotFound, typeName[T]())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists: %w", srverr.ErrConflict, typeName[T](), err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", srverr.ErrInvalidState, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced record missing: %w", srverr.ErrNotFound, err)
	default:
		return err
	}
}

func (s *Store[T]) Create(ctx context.Context, record *T) error {
	ctx, span := s.start(ctx, "Create")
	defer span.End()

	err := s.db.WithContext(ctx).Create(record).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create record")
		return translate[T](err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created record")
	return nil
}

func (s *Store[T]) ByID(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, span := s.start(ctx, "ByID", attribute.String("id", id.String()))
	defer span.End()

	record, err := models.ByID[T](ctx, s.db, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get record")
		return nil, translate[T](err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got record")
	return record, nil
}

// Lookup by a unique column such as slug or email
func (s *Store[T]) BySecondaryKey(ctx context.Context, column string, value any) (*T, error) {
	ctx, span := s.start(ctx, "BySecondaryKey", attribute.String("column", column))
	defer span.End()

	var record T
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&record).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get record")
		return nil, translate[T](err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got record")
	return &record, nil
}

// Newest first. conds are passed to gorm's Find, e.g. "status = ?", "approved".
func (s *Store[T]) List(ctx context.Context, conds ...any) ([]T, error) {
	ctx, span := s.start(ctx, "List")
	defer span.End()

	records := []T{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&records, conds...).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list records")
		return nil, translate[T](err)
	}

	span.SetAttributes(attribute.Int("count", len(records)))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "listed records")
	return records, nil
}

func (s *Store[T]) Count(ctx context.Context, query any, args ...any) (int64, error) {
	ctx, span := s.start(ctx, "Count")
	defer span.End()

	var record T
	var count int64
	err := s.db.WithContext(ctx).Model(&record).Where(query, args...).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count records")
		return 0, translate[T](err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "counted records")
	return count, nil
}

// Loads the record, applies mutate, and saves every column. Last write wins.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, mutate func(*T) error) (*T, error) {
	ctx, span := s.start(ctx, "Update", attribute.String("id", id.String()))
	defer span.End()

	db := s.db.WithContext(ctx)

	record, err := models.ByID[T](ctx, db, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load record")
		return nil, translate[T](err)
	}

	if err := mutate(record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected update")
		return nil, err
	}

	if err := db.Save(record).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save record")
		return nil, translate[T](err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "updated record")
	return record, nil
}

// Column level partial update, keys are column names
func (s *Store[T]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	ctx, span := s.start(ctx, "UpdateFields", attribute.String("id", id.String()))
	defer span.End()

	var record T
	result := s.db.WithContext(ctx).Model(&record).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to update record")
		return translate[T](result.Error)
	}

	if result.RowsAffected == 0 {
		span.RecordError(nil)
		span.SetStatus(codes.Error, "record not found")
		return translate[T](gorm.ErrRecordNotFound)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "updated record")
	return nil
}

// Hard delete
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.start(ctx, "Delete", attribute.String("id", id.String()))
	defer span.End()

	var record T
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&record)
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to delete record")
		return translate[T](result.Error)
	}

	if result.RowsAffected == 0 {
		span.RecordError(nil)
		span.SetStatus(codes.Error, "record not found")
		return translate[T](gorm.ErrRecordNotFound)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "deleted record")
	return nil
}
