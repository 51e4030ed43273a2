package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// ApplySchema creates any missing tables and indexes. Safe to run on every start.
func (db *DB) ApplySchema(ctx context.Context) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
