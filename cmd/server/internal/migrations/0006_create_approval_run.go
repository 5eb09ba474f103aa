package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0006, Down0006)
}

func Up0006(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
CREATE TABLE approval_run (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    kind TEXT NOT NULL CHECK (kind IN ('judge_application', 'hackathon')),
    subject_id UUID NOT NULL,
    judge_id UUID DEFAULT NULL REFERENCES judge (id) ON DELETE SET NULL,
    steps JSONB NOT NULL DEFAULT '{}'::jsonb,
    state TEXT NOT NULL DEFAULT 'running'
        CHECK (state IN ('running', 'completed', 'partial')),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp
);
`},
		statement{query: `
CREATE INDEX approval_run_state_idx ON approval_run (state);
`},
		statement{query: `
CREATE INDEX approval_run_subject_idx ON approval_run (kind, subject_id);
`})
}

func Down0006(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE approval_run;`)
	return err
}
