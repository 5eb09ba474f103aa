// Package testdb starts a throwaway postgres for tests that need the real schema.
package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/judgebase/judgebase-api/cmd/server/internal/migrations"
)

// Migrated database, terminated when the test finishes
func New(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16.4-alpine",
		postgres.WithDatabase("judgebase"),
		postgres.WithUsername("judgebase"),
		postgres.WithPassword("judgebase"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(postgresContainer),
			"failed to terminate container")
	})
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string to container")

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to the database")

	require.NoError(t, migrations.Up(ctx, db), "failed to migrate db")

	return db
}

// Runs fn inside a transaction that is always rolled back
func Tx(t testing.TB, db *gorm.DB, fn func(tx *gorm.DB)) {
	t.Helper()

	tx := db.Begin()
	require.NoError(t, tx.Error, "failed to begin transaction")
	defer tx.Rollback()

	fn(tx)
}
