package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0005, Down0005)
}

func Up0005(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `
CREATE TABLE invitation (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    judge_id UUID NOT NULL REFERENCES judge (id) ON DELETE CASCADE,
    hackathon_id UUID NOT NULL REFERENCES hackathon (id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'accepted', 'rejected')),
    message TEXT NOT NULL DEFAULT '',
    email_sent BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    UNIQUE (judge_id, hackathon_id)
);
`},
		statement{query: `
CREATE TABLE judging_interest (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    judge_id UUID NOT NULL REFERENCES judge (id) ON DELETE CASCADE,
    hackathon_id UUID NOT NULL REFERENCES hackathon (id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'accepted', 'rejected')),
    message TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    UNIQUE (judge_id, hackathon_id)
);
`},
		statement{query: `
CREATE INDEX judging_interest_hackathon_idx ON judging_interest (hackathon_id);
`})
}

func Down0005(ctx context.Context, tx *sql.Tx) error {
	return execStatements(ctx, tx,
		statement{query: `DROP TABLE judging_interest;`},
		statement{query: `DROP TABLE invitation;`})
}
