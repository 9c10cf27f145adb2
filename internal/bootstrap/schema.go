package bootstrap

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/tunakleague/collabin-backend/internal/storage/postgres"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates the tables when they are missing. Every statement is
// idempotent, so it runs on each start.
func EnsureSchema(ctx context.Context, db postgres.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
