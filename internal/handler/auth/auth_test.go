package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/database"
	"tourbase/internal/mailer"
	"tourbase/internal/model"
	"tourbase/internal/service"
	"tourbase/internal/store"
	"tourbase/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	newResetToken = service.NewResetToken
	createUser = store.CreateUser
	getUserByEmail = store.GetUserByEmail
	setPasswordResetToken = store.SetPasswordResetToken
	clearPasswordResetToken = store.ClearPasswordResetToken
	consumePasswordResetToken = store.ConsumePasswordResetToken
}

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testConfig() *config.Config {
	return &config.Config{AppEnv: "development", JWTExpiry: time.Hour, JWTCookieExpiryDays: 90}
}

func TestSignupHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/signup", "{")
		err := SignupHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusBadRequest, ae.Code)
	})

	t.Run("password mismatch rejected before persistence", func(t *testing.T) {
		t.Cleanup(restore)
		created := false
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			created = true
			return nil, nil
		}
		body := `{"name":"Alice","email":"a@b.com","password":"Secret123!","password_confirm":"other"}`
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/signup", body)
		err := SignupHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusBadRequest, ae.Code)
		require.False(t, created)
	})

	t.Run("invalid role", func(t *testing.T) {
		t.Cleanup(restore)
		body := `{"name":"Alice","email":"a@b.com","password":"Secret123!","password_confirm":"Secret123!","role":"superuser"}`
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/signup", body)
		err := SignupHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusBadRequest, ae.Code)
	})

	t.Run("success lowercases email and defaults role", func(t *testing.T) {
		t.Cleanup(restore)
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			require.Equal(t, "alice@example.com", u.Email)
			require.Equal(t, model.RoleUser, u.Role)
			require.NotEqual(t, "Secret123!", u.PasswordHash)
			u.ID = 1
			return u, nil
		}
		body := `{"name":"Alice","email":"Alice@Example.com","password":"Secret123!","password_confirm":"Secret123!"}`
		ctx, rec := newJSONCtx(e, http.MethodPost, "/users/signup", body)
		require.NoError(t, SignupHandler(nil, testConfig())(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"token"`)
		require.NotContains(t, rec.Body.String(), "password")
		require.Contains(t, rec.Header().Get("Set-Cookie"), "jwt=")
		require.Contains(t, rec.Header().Get("Set-Cookie"), "HttpOnly")
	})
}

func TestLoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	e := echo.New()
	e.Validator = &stubValidator{}

	hash, err := service.HashPassword("Secret123!")
	require.NoError(t, err)
	user := &model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser, PasswordHash: hash}

	t.Run("unknown email", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"x"}`)
		err := LoginHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return user, nil }
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"wrong"}`)
		err := LoginHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusUnauthorized, ae.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			require.Equal(t, "a@b.com", email)
			return user, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/users/login", `{"email":"A@B.com","password":"Secret123!"}`)
		require.NoError(t, LoginHandler(nil, testConfig())(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token"`)
	})
}

func TestForgotPasswordHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}
	user := &model.User{ID: 7, Email: "a@b.com"}

	t.Run("unknown email", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/forgotPassword", `{"email":"a@b.com"}`)
		err := ForgotPasswordHandler(nil, &mailer.FakeMailer{}, worker.NewPool(1))(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusNotFound, ae.Code)
	})

	t.Run("sends reset link", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return user, nil }
		var savedHash string
		setPasswordResetToken = func(_ context.Context, _ database.DB, id int, hash string, expiry time.Time) error {
			require.Equal(t, 7, id)
			require.WithinDuration(t, time.Now().Add(service.ResetTokenTTL), expiry, time.Minute)
			savedHash = hash
			return nil
		}
		fm := &mailer.FakeMailer{}
		pool := worker.NewPool(1)
		defer pool.Stop()

		ctx, rec := newJSONCtx(e, http.MethodPost, "/users/forgotPassword", `{"email":"a@b.com"}`)
		require.NoError(t, ForgotPasswordHandler(nil, fm, pool)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Token sent to email.")

		require.Len(t, fm.Sent, 1)
		require.Equal(t, "a@b.com", fm.Sent[0].To)
		// 信裡是明文令牌，資料庫存的是雜湊
		parts := strings.Split(fm.Sent[0].Body, "/api/v1/users/resetPassword/")
		require.Len(t, parts, 2)
		plain := strings.Fields(parts[1])[0]
		require.Equal(t, savedHash, service.HashResetToken(plain))
		require.NotEqual(t, savedHash, plain)
	})

	t.Run("send failure clears token", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) { return user, nil }
		setPasswordResetToken = func(context.Context, database.DB, int, string, time.Time) error { return nil }
		cleared := false
		clearPasswordResetToken = func(_ context.Context, _ database.DB, id int) error {
			require.Equal(t, 7, id)
			cleared = true
			return nil
		}
		fm := &mailer.FakeMailer{SendFn: func(mailer.Email) error { return errors.New("smtp down") }}
		pool := worker.NewPool(1)
		defer pool.Stop()

		ctx, _ := newJSONCtx(e, http.MethodPost, "/users/forgotPassword", `{"email":"a@b.com"}`)
		err := ForgotPasswordHandler(nil, fm, pool)(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusInternalServerError, ae.Code)
		require.True(t, ae.Operational)
		require.True(t, cleared)
	})
}

func TestResetPasswordHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	e := echo.New()
	e.Validator = &stubValidator{}

	newCtx := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		ctx, rec := newJSONCtx(e, http.MethodPatch, "/users/resetPassword/tok", body)
		ctx.SetParamNames("token")
		ctx.SetParamValues("plaintok")
		return ctx, rec
	}

	t.Run("invalid token", func(t *testing.T) {
		t.Cleanup(restore)
		consumePasswordResetToken = func(context.Context, database.DB, string, string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, _ := newCtx(`{"password":"NewSecret1!","password_confirm":"NewSecret1!"}`)
		err := ResetPasswordHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusBadRequest, ae.Code)
		require.Contains(t, ae.Message, "invalid or has expired")
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, _ := newCtx(`{"password":"NewSecret1!","password_confirm":"other"}`)
		err := ResetPasswordHandler(nil, testConfig())(ctx)
		var ae *apperr.AppError
		require.ErrorAs(t, err, &ae)
		require.Equal(t, http.StatusBadRequest, ae.Code)
	})

	t.Run("success hashes both token and password", func(t *testing.T) {
		t.Cleanup(restore)
		consumePasswordResetToken = func(_ context.Context, _ database.DB, tokenHash, newHash string) (*model.User, error) {
			require.Equal(t, service.HashResetToken("plaintok"), tokenHash)
			require.NoError(t, service.ComparePassword(newHash, "NewSecret1!"))
			return &model.User{ID: 3, Role: model.RoleUser}, nil
		}
		ctx, rec := newCtx(`{"password":"NewSecret1!","password_confirm":"NewSecret1!"}`)
		require.NoError(t, ResetPasswordHandler(nil, testConfig())(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"token"`)
	})
}
