package users

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/config"
	"tourbase/internal/database"
	"tourbase/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 回傳當前使用者資料
// @Summary     Get current user
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperr.Unauthorized("Please log in to get access.")
		}
		return c.JSON(http.StatusOK, api.Success(user))
	}
}

// UpdateMeHandler 更新當前使用者姓名與 Email
// 帶密碼欄位直接拒絕，密碼一律走 /users/updateMyPassword
// @Summary     Update current user info
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.UpdateMeRequest true "更新欄位"
// @Success     200  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/updateMe [patch]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperr.Unauthorized("Please log in to get access.")
		}

		var req api.UpdateMeRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		if req.Password != "" || req.PasswordConfirm != "" {
			return apperr.BadRequest("This route is not for password updates. Please use /updateMyPassword.")
		}
		if req.Email != "" {
			req.Email = strings.ToLower(req.Email)
			if _, err := mail.ParseAddress(req.Email); err != nil {
				return apperr.BadRequest("Invalid email format.")
			}
		}

		ctx := c.Request().Context()
		if err := updateUserProfile(ctx, db, user.ID, req.Name, req.Email); err != nil {
			return err
		}
		updated, err := getUserByID(ctx, db, user.ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(updated))
	}
}

// DeleteMeHandler 停用當前帳號（軟刪除）
// @Summary     Deactivate current user
// @Tags        users
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/deleteMe [delete]
func DeleteMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperr.Unauthorized("Please log in to get access.")
		}
		if err := deactivateUser(c.Request().Context(), db, user.ID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// UpdateMyPasswordHandler 驗證舊密碼後更新密碼並換發新令牌
// @Summary     Update own password
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.UpdateMyPasswordRequest true "密碼資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/updateMyPassword [patch]
func UpdateMyPasswordHandler(db database.DB, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperr.Unauthorized("Please log in to get access.")
		}

		var req api.UpdateMyPasswordRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		if req.Password != req.PasswordConfirm {
			return apperr.BadRequest("Passwords do not match.")
		}

		if err := authenticateUser(c.Request().Context(), *user, req.PasswordCurrent); err != nil {
			return apperr.Unauthorized("Your current password is wrong.")
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return apperr.Wrap(err)
		}
		if err := updateUserPassword(c.Request().Context(), db, user.ID, hash); err != nil {
			return err
		}

		// 密碼換了，舊令牌馬上失效，直接換發新的
		token, err := issueAccessToken(*user, cfg.JWTExpiry)
		if err != nil {
			return apperr.Wrap(err)
		}
		c.SetCookie(&http.Cookie{
			Name:     "jwt",
			Value:    token,
			Path:     "/",
			Expires:  time.Now().AddDate(0, 0, cfg.JWTCookieExpiryDays),
			HttpOnly: true,
			Secure:   !cfg.IsDevelopment(),
		})
		return c.JSON(http.StatusOK, api.AuthResponse{Status: api.StatusSuccess, Token: token, Data: user})
	}
}
