package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/service"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	verifyAccessToken = service.VerifyAccessToken
	getUserByID = store.GetUserByID
}

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExtractToken(t *testing.T) {
	ctx, _ := newContext("")
	_, err := extractToken(ctx)
	require.Error(t, err)

	ctx, _ = newContext("BadHeader")
	_, err = extractToken(ctx)
	require.Error(t, err)

	ctx, _ = newContext("Bearer abc")
	tok, err := extractToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", tok)

	// 大小寫不敏感
	ctx, _ = newContext("bearer abc")
	_, err = extractToken(ctx)
	require.NoError(t, err)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		tok, err := service.IssueAccessToken(model.User{ID: 2, Role: model.RoleUser}, time.Minute)
		require.NoError(t, err)

		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			require.Equal(t, 2, id)
			return &model.User{ID: 2, Role: model.RoleUser, Active: true}, nil
		}

		ctx, rec := newContext("Bearer " + tok)
		called := false
		handler := RequireAuth(nil)(func(c echo.Context) error {
			called = true
			u, ok := CurrentUser(c)
			require.True(t, ok)
			require.Equal(t, 2, u.ID)
			return c.String(http.StatusOK, "ok")
		})
		require.NoError(t, handler(ctx))
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, _ := newContext("")
		called := false
		err := RequireAuth(nil)(func(echo.Context) error { called = true; return nil })(ctx)
		require.Error(t, err)
		require.False(t, called)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, _ := newContext("Bearer invalid")
		err := RequireAuth(nil)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
	})

	t.Run("user gone", func(t *testing.T) {
		t.Cleanup(restore)
		tok, _ := service.IssueAccessToken(model.User{ID: 3}, time.Minute)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("no rows")
		}
		ctx, _ := newContext("Bearer " + tok)
		err := RequireAuth(nil)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
		require.Contains(t, ae.Message, "User does not exist")
	})

	t.Run("stale credential", func(t *testing.T) {
		t.Cleanup(restore)
		tok, _ := service.IssueAccessToken(model.User{ID: 4}, time.Minute)
		changed := time.Now().Add(time.Hour)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 4, PasswordChangedAt: &changed, Active: true}, nil
		}
		ctx, _ := newContext("Bearer " + tok)
		err := RequireAuth(nil)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
		require.Contains(t, ae.Message, "Password updated")
	})

	t.Run("expired token", func(t *testing.T) {
		t.Cleanup(restore)
		// 直接以負 TTL 簽發過期令牌
		tok, _ := service.IssueAccessToken(model.User{ID: 5}, -time.Minute)
		ctx, _ := newContext("Bearer " + tok)
		err := RequireAuth(nil)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
		require.Contains(t, ae.Message, "Token expired")
	})
}

func TestAuthorize(t *testing.T) {
	require.NoError(t, Authorize(model.RoleAdmin, model.RoleAdmin, model.RoleLeadGuide))
	require.NoError(t, Authorize(model.RoleUser, model.RoleUser))

	err := Authorize(model.RoleUser, model.RoleAdmin)
	var ae *apperr.AppError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusForbidden, ae.Code)
}

func TestRequireRoles(t *testing.T) {
	t.Run("forbidden for non-member", func(t *testing.T) {
		ctx, _ := newContext("")
		ctx.Set(ContextUserKey, &model.User{Role: model.RoleUser})
		err := RequireRoles(model.RoleAdmin)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusForbidden, ae.Code)
	})

	t.Run("allows member", func(t *testing.T) {
		ctx, _ := newContext("")
		ctx.Set(ContextUserKey, &model.User{Role: model.RoleLeadGuide})
		called := false
		err := RequireRoles(model.RoleAdmin, model.RoleLeadGuide)(func(echo.Context) error {
			called = true
			return nil
		})(ctx)
		require.NoError(t, err)
		require.True(t, called)
	})

	t.Run("guards missing authentication", func(t *testing.T) {
		ctx, _ := newContext("")
		err := RequireRoles(model.RoleAdmin)(func(echo.Context) error { return nil })(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusInternalServerError, ae.Code)
		require.False(t, ae.Operational)
	})
}
