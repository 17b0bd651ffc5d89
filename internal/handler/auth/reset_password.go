package auth

import (
	"errors"
	"net/http"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/database"
	"tourbase/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// ResetPasswordHandler 以重設令牌設定新密碼並直接登入
// 令牌驗證與清除在同一道 UPDATE 完成，重複使用必定失敗
// @Summary     Reset password
// @Description 使用 email 中的重設令牌設定新密碼，成功後回傳工作階段令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       token path string                   true "重設令牌"
// @Param       body  body api.ResetPasswordRequest true "新密碼"
// @Success     200   {object} api.AuthResponse
// @Failure     400   {object} api.ErrorResponse
// @Router      /users/resetPassword/{token} [patch]
func ResetPasswordHandler(db database.DB, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ResetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		if req.Password != req.PasswordConfirm {
			return apperr.BadRequest("Passwords do not match.")
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return apperr.Wrap(err)
		}

		tokenHash := service.HashResetToken(c.Param("token"))
		user, err := consumePasswordResetToken(c.Request().Context(), db, tokenHash, hash)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.BadRequest("Token is invalid or has expired.")
			}
			return err
		}

		return respondWithSession(c, cfg, user, http.StatusOK)
	}
}
