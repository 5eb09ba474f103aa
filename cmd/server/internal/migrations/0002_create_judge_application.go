package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0002, Down0002)
}

func Up0002(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
CREATE TABLE judge_application (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    role TEXT NOT NULL,
    company TEXT NOT NULL DEFAULT '',
    linkedin TEXT NOT NULL DEFAULT '',
    github TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    expertise JSONB NOT NULL DEFAULT '[]'::jsonb,
    bio TEXT NOT NULL,
    philosophy TEXT NOT NULL DEFAULT '',
    mentoring BOOLEAN NOT NULL DEFAULT false,
    format TEXT NOT NULL,
    photo_key TEXT DEFAULT NULL,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'approved', 'rejected')),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp
);
`},
		statement{query: `
CREATE INDEX judge_application_status_idx ON judge_application (status);
`})
}

func Down0002(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE judge_application;`)
	return err
}
