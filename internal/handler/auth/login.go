package auth

import (
	"net/http"
	"strings"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/database"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳工作階段令牌
// @Summary     Log in
// @Description 使用 Email 與 Password 進行驗證，回傳工作階段令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(db database.DB, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		// 帳號不存在與密碼錯誤回同一個訊息，避免洩漏帳號存在與否
		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return apperr.Unauthorized("Incorrect email or password.")
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return apperr.Unauthorized("Incorrect email or password.")
		}

		return respondWithSession(c, cfg, user, http.StatusOK)
	}
}
