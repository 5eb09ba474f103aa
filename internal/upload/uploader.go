package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/judgebase/judgebase-api/internal/hash"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/internal/upload")

var ErrUnsupportedType = errors.New("unsupported content type")

//go:generate mockgen -destination ./mock/mock.go -package mock . Uploader

// Object storage for judge photos
type Uploader interface {
	// Create / Overwrite object contents by `key`
	Upload(ctx context.Context, reader io.ReadSeeker, length int64, key, contentType string) error
	// Check if an object exists (focused on preventing uploading the same photo twice, not authoritative existence)
	//
	// May always return false
	Exists(ctx context.Context, key string) (bool, error)
	// Deleting a missing object is not an error
	Delete(ctx context.Context, key string) error
	// Anonymous, readonly, internet accessible URL for downloading the object
	PresignedReadURL(ctx context.Context, key string, duration time.Duration) (string, error)
}

var photoExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// Stores a photo under a key derived from the hash of its contents (CAS)
//
// Will not upload if a photo with the same hash already exists
func StorePhoto(
	ctx context.Context,
	u Uploader,
	data []byte,
	contentType string,
) (string, error) {
	ctx, span := tracer.Start(ctx, "StorePhoto", trace.WithAttributes(
		attribute.String("contentType", contentType),
		attribute.Int("length", len(data)),
	))
	defer span.End()

	ext, ok := photoExtensions[contentType]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unsupported content type")
		return "", err
	}

	reader := bytes.NewReader(data)

	hashedContent, err := hash.Reader(ctx, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash photo")
		return "", err
	}
	key := fmt.Sprintf("photos/%s.%s", hashedContent, ext)

	exists, err := u.Exists(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check if photo exists")
		return "", err
	}

	if exists {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "found existing photo")
		return key, nil
	}

	_, err = reader.Seek(0, io.SeekStart)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seek to start")
		return "", err
	}

	err = u.Upload(ctx, reader, int64(len(data)), key, contentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload photo")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "uploaded photo by hash")
	return key, nil
}
