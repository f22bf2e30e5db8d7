package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-fpl-sync/domain"
)

// CreateTables creates every entity table if it does not exist. Composite
// natural keys are the primary keys, which is what backs the idempotent
// upserts' ON CONFLICT targets.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*domain.Team)(nil),
		(*domain.Player)(nil),
		(*domain.Event)(nil),
		(*domain.Fixture)(nil),
		(*domain.Live)(nil),
		(*domain.Pick)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return &PersistenceError{Op: "CreateTables", Err: err}
		}
	}
	return nil
}
