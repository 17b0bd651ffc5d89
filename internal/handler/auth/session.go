package auth

import (
	"net/http"
	"time"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/model"
	"tourbase/internal/service"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	hashPassword              = service.HashPassword
	authenticateUser          = service.AuthenticateUser
	issueAccessToken          = service.IssueAccessToken
	newResetToken             = service.NewResetToken
	createUser                = store.CreateUser
	getUserByEmail            = store.GetUserByEmail
	setPasswordResetToken     = store.SetPasswordResetToken
	clearPasswordResetToken   = store.ClearPasswordResetToken
	consumePasswordResetToken = store.ConsumePasswordResetToken
)

const sessionCookieName = "jwt"

// respondWithSession 簽發工作階段令牌、寫入 cookie 並回傳統一格式
// 簽不出令牌屬於程式錯誤，交給集中式錯誤處理器當非操作型 500
func respondWithSession(c echo.Context, cfg *config.Config, user *model.User, status int) error {
	token, err := issueAccessToken(*user, cfg.JWTExpiry)
	if err != nil {
		return apperr.Wrap(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().AddDate(0, 0, cfg.JWTCookieExpiryDays),
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
	})

	return c.JSON(status, api.AuthResponse{
		Status: api.StatusSuccess,
		Token:  token,
		Data:   user,
	})
}
