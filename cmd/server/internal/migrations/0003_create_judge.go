package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0003, Down0003)
}

func Up0003(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
CREATE TABLE judge (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    slug TEXT NOT NULL UNIQUE,
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
    featured BOOLEAN NOT NULL DEFAULT false,
    badges JSONB NOT NULL DEFAULT '[]'::jsonb,
    auth_password_hash TEXT DEFAULT NULL,
    auth_user_id TEXT DEFAULT NULL,
    status TEXT NOT NULL DEFAULT 'approved'
        CHECK (status IN ('pending', 'approved', 'rejected')),
    source_application_id UUID DEFAULT NULL UNIQUE
        REFERENCES judge_application (id) ON DELETE SET NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    CONSTRAINT judge_featured_requires_approved
        CHECK (featured = false OR status = 'approved')
);
`},
		statement{query: `
CREATE INDEX judge_email_idx ON judge (lower(email));
`})
}

func Down0003(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE judge;`)
	return err
}
