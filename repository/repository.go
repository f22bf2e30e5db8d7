// Package repository provides the idempotent batch persistence layer. One
// generic repository, parameterized by a ModelHandlers descriptor, replaces
// the per-entity modules the data model would otherwise repeat.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// ConflictPolicy declares what a batch write does when it hits an existing
// row with the same natural key.
type ConflictPolicy int

const (
	// ConflictIgnore leaves the existing row untouched. Used for entities
	// that are immutable once written (fixtures, picks).
	ConflictIgnore ConflictPolicy = iota

	// ConflictUpdate refreshes the declared update columns from the incoming
	// row. Used for entities re-fetched with updated mutable fields.
	ConflictUpdate
)

// ModelHandlers describes one entity type to the generic repository: its
// natural key, its conflict policy, and how writes are scoped.
type ModelHandlers[T any] struct {
	// Entity names the type in errors and logs.
	Entity string

	// IDColumn is the column FindByID matches against.
	IDColumn string

	// ConflictColumns is the unique natural key backing idempotent upserts.
	// Also defines the deterministic FindAll ordering.
	ConflictColumns []string

	// UpdateColumns are refreshed from the incoming row under
	// ConflictUpdate.
	UpdateColumns []string

	// ScopeColumn optionally narrows reads and deletes to one logical group
	// (e.g. event_id). Empty for season-wide entities.
	ScopeColumn string

	// Scope extracts the scoping id from a record. Required when
	// ScopeColumn is set.
	Scope func(T) int64

	// Policy is the declared conflict policy for this entity type.
	Policy ConflictPolicy
}

func (h ModelHandlers[T]) validate() error {
	if h.Entity == "" {
		return errors.New("handlers: Entity must not be empty")
	}
	if h.IDColumn == "" {
		return errors.New("handlers: IDColumn must not be empty")
	}
	if len(h.ConflictColumns) == 0 {
		return errors.New("handlers: ConflictColumns must not be empty")
	}
	if h.Policy == ConflictUpdate && len(h.UpdateColumns) == 0 {
		return errors.New("handlers: ConflictUpdate requires UpdateColumns")
	}
	if h.ScopeColumn != "" && h.Scope == nil {
		return errors.New("handlers: ScopeColumn requires a Scope extractor")
	}
	return nil
}

// Repository is a generic bun-backed repository for one entity type.
type Repository[T any] struct {
	db *bun.DB
	h  ModelHandlers[T]
}

// New creates a repository for the entity type described by handlers.
func New[T any](db *bun.DB, handlers ModelHandlers[T]) (*Repository[T], error) {
	if err := handlers.validate(); err != nil {
		return nil, err
	}
	return &Repository[T]{db: db, h: handlers}, nil
}

// Handlers returns the descriptor this repository was built with.
func (r *Repository[T]) Handlers() ModelHandlers[T] {
	return r.h
}

// FindByID returns the record whose id column equals id, or a NotFoundError.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (T, error) {
	var rec T
	err := r.db.NewSelect().
		Model(&rec).
		Where("? = ?", bun.Ident(r.h.IDColumn), id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, &NotFoundError{Entity: r.h.Entity, ID: id}
		}
		return rec, &PersistenceError{Op: r.h.Entity + ".FindByID", Err: err}
	}
	return rec, nil
}

// FindAll returns every record, ordered by natural key ascending so reads
// are deterministic for tests and downstream consumers.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	recs := make([]T, 0)
	err := r.db.NewSelect().
		Model(&recs).
		OrderExpr("?", bun.Safe(r.orderBy())).
		Scan(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: r.h.Entity + ".FindAll", Err: err}
	}
	return recs, nil
}

// FindByScope returns the records in one logical group, ordered by natural
// key ascending.
func (r *Repository[T]) FindByScope(ctx context.Context, scope int64) ([]T, error) {
	if r.h.ScopeColumn == "" {
		return nil, &PersistenceError{Op: r.h.Entity + ".FindByScope", Err: errors.New("entity has no scope column")}
	}
	recs := make([]T, 0)
	err := r.db.NewSelect().
		Model(&recs).
		Where("? = ?", bun.Ident(r.h.ScopeColumn), scope).
		OrderExpr("?", bun.Safe(r.orderBy())).
		Scan(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: r.h.Entity + ".FindByScope", Err: err}
	}
	return recs, nil
}

// SaveBatch inserts records in one transaction, resolving natural-key
// conflicts per the entity's declared policy, then returns the up-to-date
// row set via a re-read. Callers must not assume the returned set equals the
// input: conflicting rows may have been kept or merged.
func (r *Repository[T]) SaveBatch(ctx context.Context, records []T) ([]T, error) {
	if len(records) == 0 {
		return r.reRead(ctx, records)
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewInsert().Model(&records)

		switch r.h.Policy {
		case ConflictUpdate:
			q = q.On("CONFLICT (?) DO UPDATE", bun.Safe(strings.Join(r.h.ConflictColumns, ", ")))
			for _, col := range r.h.UpdateColumns {
				q = q.Set("? = ?", bun.Ident(col), bun.Safe("EXCLUDED."+col))
			}
			q = q.Set("updated_at = CURRENT_TIMESTAMP")
		default:
			q = q.On("CONFLICT (?) DO NOTHING", bun.Safe(strings.Join(r.h.ConflictColumns, ", ")))
		}

		_, err := q.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, &PersistenceError{Op: r.h.Entity + ".SaveBatch", Err: err}
	}

	return r.reRead(ctx, records)
}

// DeleteAll purges every row. Used by destructive rebuild strategies that
// re-fetch upstream wholesale after the purge.
func (r *Repository[T]) DeleteAll(ctx context.Context) error {
	var model T
	_, err := r.db.NewDelete().
		Model(&model).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return &PersistenceError{Op: r.h.Entity + ".DeleteAll", Err: err}
	}
	return nil
}

// DeleteByScope purges the rows of one logical group.
func (r *Repository[T]) DeleteByScope(ctx context.Context, scope int64) error {
	if r.h.ScopeColumn == "" {
		return &PersistenceError{Op: r.h.Entity + ".DeleteByScope", Err: errors.New("entity has no scope column")}
	}
	var model T
	_, err := r.db.NewDelete().
		Model(&model).
		Where("? = ?", bun.Ident(r.h.ScopeColumn), scope).
		Exec(ctx)
	if err != nil {
		return &PersistenceError{Op: r.h.Entity + ".DeleteByScope", Err: err}
	}
	return nil
}

func (r *Repository[T]) reRead(ctx context.Context, records []T) ([]T, error) {
	if r.h.ScopeColumn != "" && len(records) > 0 {
		return r.FindByScope(ctx, r.h.Scope(records[0]))
	}
	return r.FindAll(ctx)
}

func (r *Repository[T]) orderBy() string {
	parts := make([]string, 0, len(r.h.ConflictColumns))
	for _, col := range r.h.ConflictColumns {
		parts = append(parts, fmt.Sprintf("%s ASC", col))
	}
	return strings.Join(parts, ", ")
}
