package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
)

/*
BaseVersionedRepo bundles the select-by-id statement and row scanner of a
versioned model so concrete repositories get GetByID and UpdateWithRetry
for free. Embed a pointer to it.
*/
type BaseVersionedRepo[T EntityWithVersion] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
	maxRetries int
}

func NewBaseRepo[T EntityWithVersion](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{
		db:         db,
		selectByID: selectByID,
		scan:       scan,
		maxRetries: DefaultMaxRetries,
	}
}

func (b *BaseVersionedRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	return b.scan(b.db.QueryRow(ctx, b.selectByID, id))
}

func (b *BaseVersionedRepo[T]) UpdateWithRetry(
	ctx context.Context,
	id string,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
) error {
	return WithRetry(ctx, b.maxRetries, id, b.GetByID, updateIfVersion, mutate)
}
