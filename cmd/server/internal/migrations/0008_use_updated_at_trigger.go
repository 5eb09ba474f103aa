package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0008, Down0008)
}

var tables = []string{
	"judge_application",
	"judge",
	"hackathon",
	"invitation",
	"judging_interest",
	"approval_run",
	"admin_session",
}

func Up0008(ctx context.Context, tx *sql.Tx) error {
	for _, table := range tables {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(`
CREATE TRIGGER touch_updated_at_trigger
BEFORE UPDATE ON %s
FOR EACH ROW EXECUTE PROCEDURE touch_updated_at();`,
			table))
		if err != nil {
			return err
		}
	}

	return nil
}

func Down0008(ctx context.Context, tx *sql.Tx) error {
	reversed := slices.Clone(tables)
	slices.Reverse(reversed)
	for _, table := range reversed {
		_, err := tx.ExecContext(
			ctx,
			fmt.Sprintf(`DROP TRIGGER touch_updated_at_trigger ON %s;`, table),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
