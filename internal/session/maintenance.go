package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/spantag/internal/database"
)

// ErrNoRun is returned by Reset for an unknown run name.
var ErrNoRun = errors.New("no such run")

// Reset forgets a run and its recorded annotations so the next Open with the
// same name starts from the first sentence. Files already written to the
// output dir are left alone.
func Reset(ctx context.Context, db *sql.DB, name string) error {
	return database.WithTx(ctx, db, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM runs WHERE name = ?`, name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%q: %w", name, ErrNoRun)
		}
		if err != nil {
			return err
		}
		for _, q := range []string{
			`DELETE FROM annotations WHERE run_id = ?`,
			`DELETE FROM runs WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return fmt.Errorf("reset run %q: %w", name, err)
			}
		}
		return nil
	})
}
