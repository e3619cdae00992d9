package repositories

import (
	"context"
	"testing"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryRetriesOnVersionConflict(t *testing.T) {
	stored := &models.Survey{Results: "{}"}
	stored.RowVersion = 1

	getByID := func(ctx context.Context, id string) (*models.Survey, error) {
		cp := *stored
		return &cp, nil
	}
	calls := 0
	update := func(ctx context.Context, s *models.Survey, expected int64) (pgconn.CommandTag, error) {
		calls++
		if calls == 1 {
			// a concurrent writer bumps the version first
			stored.RowVersion++
			return pgconn.CommandTag("UPDATE 0"), nil
		}
		if expected != stored.RowVersion {
			return pgconn.CommandTag("UPDATE 0"), nil
		}
		stored.Results = s.Results
		stored.RowVersion++
		return pgconn.CommandTag("UPDATE 1"), nil
	}

	err := WithRetry(context.Background(), DefaultMaxRetries, "s1", getByID, update, func(s *models.Survey) error {
		s.Results = `{"q1":{"yes":1}}`
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, `{"q1":{"yes":1}}`, stored.Results)
	assert.EqualValues(t, 3, stored.RowVersion)
}

func TestWithRetryGivesUp(t *testing.T) {
	getByID := func(ctx context.Context, id string) (*models.Survey, error) {
		return &models.Survey{}, nil
	}
	update := func(ctx context.Context, s *models.Survey, expected int64) (pgconn.CommandTag, error) {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	err := WithRetry(context.Background(), 2, "s1", getByID, update, func(*models.Survey) error { return nil })
	assert.ErrorIs(t, err, ErrTooMuchContention)
}

func TestWithRetryMissingRow(t *testing.T) {
	getByID := func(ctx context.Context, id string) (*models.Survey, error) {
		return nil, nil
	}
	update := func(ctx context.Context, s *models.Survey, expected int64) (pgconn.CommandTag, error) {
		t.Fatal("update must not run for a missing row")
		return nil, nil
	}
	err := WithRetry(context.Background(), 3, "s1", getByID, update, func(*models.Survey) error { return nil })
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
