package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestFakeDBPanicsWithoutFns(t *testing.T) {
	f := &FakeDB{}
	ctx := context.Background()
	require.Panics(t, func() { _, _ = f.Exec(ctx, "SELECT 1") })
	require.Panics(t, func() { _, _ = f.Query(ctx, "SELECT 1") })
	require.Panics(t, func() { _ = f.QueryRow(ctx, "SELECT 1") })
	require.Panics(t, func() { _ = f.Ping(ctx) })
	require.NotPanics(t, func() { f.Close() })
}

func TestFakeDBDelegates(t *testing.T) {
	ctx := context.Background()
	closed := false
	f := &FakeDB{
		ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("query")
		},
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return nil
		},
		PingFn:  func(context.Context) error { return errors.New("ping") },
		CloseFn: func() { closed = true },
	}

	tag, err := f.Exec(ctx, "UPDATE")
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())

	_, err = f.Query(ctx, "SELECT")
	require.EqualError(t, err, "query")

	require.Nil(t, f.QueryRow(ctx, "SELECT"))
	require.EqualError(t, f.Ping(ctx), "ping")

	f.Close()
	require.True(t, closed)
}
