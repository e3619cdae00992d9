package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// ErrTooMuchContention is returned when every optimistic attempt lost the
// row_version race.
var ErrTooMuchContention = errors.New("too much contention")

// DefaultMaxRetries bounds the read-mutate-update loop.
const DefaultMaxRetries = 3

/*
EntityWithVersion:

* `comparable`  → a nil pointer can be told apart from a loaded row
* the id and row_version accessors the retry loop needs
*/
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

/*
WithRetry runs a read-mutate-update loop with optimistic locking. The
update must match on the version read in the same attempt; zero affected
rows means another writer won and the loop starts over from a fresh read.
*/
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}
		var zero T
		if current == zero {
			return pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()
		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return nil
		}
	}
	return fmt.Errorf("updating %q: %w", id, ErrTooMuchContention)
}
