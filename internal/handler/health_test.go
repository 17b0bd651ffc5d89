package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourbase/internal/apperr"
	"tourbase/internal/cache"
	"tourbase/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newHealthCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okStatusCmd() *redis.StatusCmd {
	cmd := redis.NewStatusCmd(context.Background())
	cmd.SetVal("OK")
	return cmd
}

func TestHealthHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
		rdb := &cache.FakeCache{SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return okStatusCmd()
		}}
		ctx, rec := newHealthCtx()
		require.NoError(t, HealthHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"status":"success"`)
	})

	t.Run("db down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
		ctx, _ := newHealthCtx()
		err := HealthHandler(db, &cache.FakeCache{})(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusInternalServerError, ae.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
		rdb := &cache.FakeCache{SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			cmd := redis.NewStatusCmd(context.Background())
			cmd.SetErr(errors.New("down"))
			return cmd
		}}
		ctx, _ := newHealthCtx()
		err := HealthHandler(db, rdb)(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusInternalServerError, ae.Code)
	})
}
