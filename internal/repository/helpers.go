package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// withTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on every other exit path.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere in the value.
// An empty term yields "%%", which matches every row.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
