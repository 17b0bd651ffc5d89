package users

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/service"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	issueAccessToken   = service.IssueAccessToken
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	listUsers          = store.ListUsers
	updateUser         = store.UpdateUser
	updateUserProfile  = store.UpdateUserProfile
	updateUserPassword = store.UpdateUserPassword
	deactivateUser     = store.DeactivateUser
)

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid user ID.")
	}
	return id, nil
}

// ListUsersHandler 列出所有使用者，支援過濾、排序、欄位選取與分頁
// @Summary     List users
// @Description 以查詢參數過濾、排序、選欄位與分頁
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     400 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db, c.QueryParams())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.SuccessList(len(users), users))
	}
}

// CreateUserHandler 管理員建立新使用者
// @Summary     Create a user
// @Description 管理員直接建立帳號 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
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
		return c.JSON(http.StatusCreated, api.Success(user))
	}
}

// GetUserHandler 透過使用者 ID 取得使用者資訊
// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path int true "使用者 ID"
// @Success     200 {object} api.Envelope
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(user))
	}
}

// UpdateUserHandler 管理員更新使用者姓名、Email 或角色
// 密碼不走這裡，一律透過密碼相關流程處理
// @Summary     Update a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "使用者 ID"
// @Param       body body api.UpdateUserRequest true "更新欄位"
// @Success     200  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [patch]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		if req.Email != "" {
			req.Email = strings.ToLower(req.Email)
			if _, err := mail.ParseAddress(req.Email); err != nil {
				return apperr.BadRequest("Invalid email format.")
			}
		}
		if req.Role != "" && !model.ValidRole(req.Role) {
			return apperr.BadRequest("Invalid role.")
		}

		ctx := c.Request().Context()
		if err := updateUser(ctx, db, &model.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role}); err != nil {
			return err
		}
		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(user))
	}
}

// DeleteUserHandler 管理員刪除使用者，實際上只做軟刪除
// @Summary     Delete a user
// @Tags        users
// @Param       id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := deactivateUser(c.Request().Context(), db, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
