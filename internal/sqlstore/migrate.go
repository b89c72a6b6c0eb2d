package sqlstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Migrate creates the store's tables if they do not already exist. It is
// intentionally a single flat function rather than a versioned migration
// chain: the reference store has one schema revision.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*objectRow)(nil),
		(*markerRow)(nil),
		(*effectsRow)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("sqlstore: migrate: %w", err)
		}
	}
	return nil
}
