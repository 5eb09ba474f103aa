package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0004, Down0004)
}

func Up0004(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
CREATE TABLE hackathon (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    organizer_name TEXT NOT NULL,
    organizer_email TEXT NOT NULL,
    organization TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    website TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP WITH TIME ZONE NOT NULL,
    end_date TIMESTAMP WITH TIME ZONE NOT NULL,
    platform TEXT NOT NULL,
    theme TEXT NOT NULL DEFAULT '',
    domains JSONB NOT NULL DEFAULT '[]'::jsonb,
    participant_count INTEGER NOT NULL DEFAULT 0,
    judges_needed INTEGER NOT NULL DEFAULT 0,
    time_commitment TEXT NOT NULL DEFAULT '',
    deliverables TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'approved', 'rejected')),
    auth_password_hash TEXT DEFAULT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    CONSTRAINT hackathon_dates_ordered CHECK (end_date >= start_date)
);
`},
		statement{query: `
CREATE INDEX hackathon_organizer_email_idx ON hackathon (lower(organizer_email));
`})
}

func Down0004(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE hackathon;`)
	return err
}
