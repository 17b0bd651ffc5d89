package auth

import (
	"net/http"
	"net/mail"
	"strings"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/database"
	"tourbase/internal/model"

	"github.com/labstack/echo/v4"
)

// SignupHandler 建立新帳號並直接回傳工作階段令牌
// @Summary     Sign up
// @Description 建立新帳號 (Email 會自動轉小寫)，成功後直接登入
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.SignupRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Router      /users/signup [post]
func SignupHandler(db database.DB, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		// 確認密碼必須在任何寫入之前檢查
		if req.Password != req.PasswordConfirm {
			return apperr.BadRequest("Passwords do not match.")
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return apperr.BadRequest("Invalid email format.")
		}

		role := req.Role
		if role == "" {
			role = model.RoleUser
		}
		if !model.ValidRole(role) {
			return apperr.BadRequest("Invalid role.")
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return apperr.Wrap(err)
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			Role:         role,
			PasswordHash: hash,
			Active:       true,
		})
		if err != nil {
			return err
		}

		return respondWithSession(c, cfg, user, http.StatusCreated)
	}
}
