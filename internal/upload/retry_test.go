package upload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/judgebase/judgebase-api/internal/upload"
	mockuploader "github.com/judgebase/judgebase-api/internal/upload/mock"
)

func fastBackoff() retry.Backoff {
	b := retry.NewConstant(time.Millisecond * 10)
	b = retry.WithMaxRetries(3, b)
	return b
}

func TestRetryUpload(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader("hello there")
		key := "photos/abc.png"

		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(key), gomock.Eq("image/png")).
			Return(nil).
			Times(1)

		retry := upload.NewRetryUploader(u)
		err := retry.Upload(ctx, reader, int64(reader.Len()), key, "image/png")

		require.NoError(t, err, "failed to upload")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader("hello there")
		key := "photos/abc.png"

		counter := new(int)
		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(key), gomock.Any()).
			DoAndReturn(func(_ context.Context, r io.ReadSeeker, _ int64, _, _ string) error {
				*counter++
				// every attempt starts from the beginning of the reader
				b, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.Equal(t, "hello there", string(b))

				if *counter == 2 {
					return nil
				}

				return errors.New("expected error")
			}).
			Times(2)

		retry := upload.NewRetryUploaderBackoff(u, fastBackoff)
		err := retry.Upload(ctx, reader, int64(reader.Len()), key, "image/png")

		require.NoError(t, err, "failed to upload")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader("hello there")

		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("expected error")).
			Times(4)

		retry := upload.NewRetryUploaderBackoff(u, fastBackoff)
		err := retry.Upload(ctx, reader, int64(reader.Len()), "key", "image/png")

		require.Error(t, err, "somehow uploaded")
	})
}

func TestRetryExists(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		u.EXPECT().Exists(gomock.Any(), gomock.Eq("key")).Return(true, nil).Times(1)

		retry := upload.NewRetryUploader(u)
		actual, err := retry.Exists(ctx, "key")
		require.NoError(t, err, "failed to get exists")

		assert.True(t, actual, "did not get expected")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		counter := new(int)
		u.EXPECT().
			Exists(gomock.Any(), gomock.Eq("key")).
			DoAndReturn(func(_ context.Context, _ string) (bool, error) {
				*counter++
				if *counter == 2 {
					return true, nil
				}

				return false, errors.New("expected error")
			}).
			Times(2)

		retry := upload.NewRetryUploaderBackoff(u, fastBackoff)
		actual, err := retry.Exists(ctx, "key")
		require.NoError(t, err, "failed to get exists")

		assert.True(t, actual, "did not get expected")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		u.EXPECT().
			Exists(gomock.Any(), gomock.Eq("key")).
			Return(false, errors.New("expected error")).
			Times(4)

		retry := upload.NewRetryUploaderBackoff(u, fastBackoff)
		_, err := retry.Exists(ctx, "key")

		require.Error(t, err, "somehow exists")
	})
}

func TestRetryDelete(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	u := mockuploader.NewMockUploader(ctrl)

	gomock.InOrder(
		u.EXPECT().Delete(gomock.Any(), "key").Return(errors.New("expected error")),
		u.EXPECT().Delete(gomock.Any(), "key").Return(nil),
	)

	retry := upload.NewRetryUploaderBackoff(u, fastBackoff)
	require.NoError(t, retry.Delete(ctx, "key"))
}

func TestRetryPresignedReadURL(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	u := mockuploader.NewMockUploader(ctrl)

	u.EXPECT().
		PresignedReadURL(gomock.Any(), "key", time.Hour).
		Return("https://photos.example.com/key?sig=1", nil).
		Times(1)

	retry := upload.NewRetryUploader(u)
	actual, err := retry.PresignedReadURL(ctx, "key", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "https://photos.example.com/key?sig=1", actual)
}
