package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"newsletter/pkg/storage"
	"newsletter/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Success: begin from *sql.DB
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	// Should be a *postgres.PgSQL with underlying *sql.Tx
	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	// Error: begin when already in tx
	_, err = inner.Begin(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	// Cleanup the opened transaction
	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Error path: calling Commit on non-tx
	err := pg.Commit()
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotInTx)

	// Success path: commit a stored subscriber
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.StoreSubscriber(ctx, mustNewSubscriber(t, "committed@example.com", "committed"))
	require.NoError(t, err)

	require.NoError(t, txStorage.Commit())

	// Verify persistence outside tx
	found, err := pg.SubscriberByEmail(ctx, "committed@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Error path: calling Rollback on non-tx
	err := pg.Rollback()
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotInTx)

	// Success path: rollback should discard the insert
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.StoreSubscriber(ctx, mustNewSubscriber(t, "discarded@example.com", "discarded"))
	require.NoError(t, err)

	require.NoError(t, txStorage.Rollback())

	// Verify no persistence outside tx
	found, err := pg.SubscriberByEmail(ctx, "discarded@example.com")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Success callback: should commit
	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, e := s.StoreSubscriber(ctx, mustNewSubscriber(t, "kept@example.com", "kept"))

		return e //nolint: wrapcheck
	})
	require.NoError(t, err)
	found, err := pg.SubscriberByEmail(ctx, "kept@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)

	// Error in callback: should rollback
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, _ = s.StoreSubscriber(ctx, mustNewSubscriber(t, "dropped@example.com", "dropped"))

		return errors.New("boom")
	})
	require.Error(t, err)
	found, err = pg.SubscriberByEmail(ctx, "dropped@example.com")
	require.NoError(t, err)
	require.Nil(t, found)
}
