package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0009, Down0009)
}

func Up0009(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
ALTER TABLE approval_run DROP CONSTRAINT approval_run_state_check;
`},
		statement{query: `
ALTER TABLE approval_run ADD CONSTRAINT approval_run_state_check
    CHECK (state IN ('running', 'completed', 'partial', 'abandoned'));
`})
}

func Down0009(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
DELETE FROM approval_run WHERE state = 'abandoned';
`},
		statement{query: `
ALTER TABLE approval_run DROP CONSTRAINT approval_run_state_check;
`},
		statement{query: `
ALTER TABLE approval_run ADD CONSTRAINT approval_run_state_check
    CHECK (state IN ('running', 'completed', 'partial'));
`})
}
