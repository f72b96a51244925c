package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var Schema string

// Migrate creates every table on an empty database.
func Migrate(ctx context.Context, dbConn *sql.DB) error {
	if _, err := dbConn.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
