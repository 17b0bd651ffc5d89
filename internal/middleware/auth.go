package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/service"
	"tourbase/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// 測試可覆寫
var (
	verifyAccessToken = service.VerifyAccessToken
	getUserByID       = store.GetUserByID
)

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", apperr.Unauthorized("Please log in to get access.")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperr.Unauthorized("Invalid authorization header format.")
	}
	return parts[1], nil
}

// RequireAuth 驗證 Bearer 令牌並將使用者放入 context
// 使用者不存在或密碼在令牌簽發後變更過，一律 401
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := verifyAccessToken(tokenString)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperr.Unauthorized("Token expired. Please log in again.")
				}
				return apperr.Unauthorized("Invalid token. Please log in again.")
			}

			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if err != nil {
				return apperr.Unauthorized("User does not exist.")
			}

			if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
				return apperr.Unauthorized("Password updated. Please log in again.")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

// Authorize 為明確的授權決策函式：角色不在要求集合內即拒絕
func Authorize(role string, required ...string) error {
	for _, r := range required {
		if r == role {
			return nil
		}
	}
	return apperr.Forbidden("You are not authorized to perform this action.")
}

// RequireRoles 限制路由只允許指定角色，必須接在 RequireAuth 之後
// 未經認證即進入屬於程式錯誤，以非操作型 500 擋下
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return &apperr.AppError{
					Code:    http.StatusInternalServerError,
					Message: "Unknown error",
					Err:     errors.New("authorization requires prior authentication"),
				}
			}
			if err := Authorize(user.Role, roles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
