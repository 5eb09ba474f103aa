package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/judgebase/judgebase-api/cmd/server/internal/models"
	"github.com/judgebase/judgebase-api/cmd/server/internal/testdb"
	"github.com/judgebase/judgebase-api/internal/hash"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	token, err := store.Create(ctx, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := store.Create(ctx, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "tokens are random")

	ok, err := store.Valid(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Valid(ctx, "made-up")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Valid(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, token))
	ok, err = store.Valid(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok, "deleted sessions are gone")

	ok, err = store.Valid(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok, "deleting one session keeps the others")

	require.NoError(t, store.Delete(ctx, "made-up"))
	assert.ErrorIs(t, store.Delete(ctx, ""), ErrEmptyToken)
}

func TestDBStore(t *testing.T) {
	db := testdb.New(t)

	t.Run("Lifecycle", func(t *testing.T) {
		testdb.Tx(t, db, func(tx *gorm.DB) {
			testStore(t, NewDBStore(tx))
		})
	})

	t.Run("Expiry", func(t *testing.T) {
		testdb.Tx(t, db, func(tx *gorm.DB) {
			ctx := context.Background()
			now := time.Now()
			store := NewDBStore(tx)
			store.now = func() time.Time { return now }

			token, err := store.Create(ctx, time.Minute)
			require.NoError(t, err)

			var row models.AdminSession
			require.NoError(t, tx.First(&row, "token_hash = ?", hash.String(token)).Error)
			assert.NotEqual(t, token, row.TokenHash, "raw tokens are never stored")

			now = now.Add(2 * time.Minute)
			ok, err := store.Valid(ctx, token)
			require.NoError(t, err)
			assert.False(t, ok, "expired session")

			_, err = store.Create(ctx, time.Minute)
			require.NoError(t, err)

			var count int64
			require.NoError(t, tx.Model(&models.AdminSession{}).Count(&count).Error)
			assert.Equal(t, int64(1), count, "expired sessions are swept on create")
		})
	})
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.4-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(redisContainer),
			"failed to terminate container")
	})
	require.NoError(t, err, "failed to start redis container")

	endpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(RedisStoreConfig{RedisClient: client, KeyPrefix: "test-"})

	t.Run("Lifecycle", func(t *testing.T) {
		testStore(t, store)
	})

	t.Run("Expiry", func(t *testing.T) {
		token, err := store.Create(ctx, time.Minute)
		require.NoError(t, err)

		ttl, err := client.TTL(ctx, "test-"+hash.String(token)).Result()
		require.NoError(t, err)
		assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5, "key expires with the session")
	})
}

func TestAdminAuthenticator(t *testing.T) {
	ctx := context.Background()

	auth, err := NewAdminAuthenticator("admin", "hunter2")
	require.NoError(t, err)

	for _, tc := range []struct {
		name, username, password string
		want                     bool
	}{
		{"Correct", "admin", "hunter2", true},
		{"WrongPassword", "admin", "hunter3", false},
		{"WrongUsername", "root", "hunter2", false},
		{"Empty", "", "", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := auth.Check(ctx, tc.username, tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
