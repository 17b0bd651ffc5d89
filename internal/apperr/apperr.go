// File: internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// AppError 表示領域邏輯刻意拋出的操作型錯誤
// Operational 為 false 代表非預期的程式錯誤，對外不得洩漏細節
type AppError struct {
	Code        int
	Message     string
	Operational bool
	Err         error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// StatusClass 依 HTTP 狀態碼區分 client (fail) 與 server (error)
func (e *AppError) StatusClass() string {
	if e.Code >= 400 && e.Code < 500 {
		return "fail"
	}
	return "error"
}

// New 建立操作型錯誤
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Operational: true}
}

func BadRequest(message string) *AppError { return New(http.StatusBadRequest, message) }

func Unauthorized(message string) *AppError { return New(http.StatusUnauthorized, message) }

func Forbidden(message string) *AppError { return New(http.StatusForbidden, message) }

func NotFound(message string) *AppError { return New(http.StatusNotFound, message) }

func TooManyRequests(message string) *AppError { return New(http.StatusTooManyRequests, message) }

// Internal 建立操作型的 500 錯誤（刻意拋出，訊息可對外）
func Internal(message string) *AppError { return New(http.StatusInternalServerError, message) }

// Wrap 包裝非預期錯誤，對外只呈現泛用訊息
func Wrap(err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: "Unknown error", Err: err}
}

// pg error codes
const (
	pgUniqueViolation  = "23505"
	pgInvalidTextRep   = "22P02"
	pgUndefinedColumn  = "42703"
	pgNumericOutOfRang = "22003"
	pgCheckViolation   = "23514"
	pgForeignKey       = "23503"
)

// Classify 將任意錯誤歸類為 AppError
// 資料庫、驗證與令牌錯誤轉為對應的操作型錯誤，其餘視為非預期
func Classify(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return New(he.Code, fmt.Sprint(he.Message))
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return BadRequest(fmt.Sprintf("Validation error: %v.", ve.Error()))
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound("Resource not found.")
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case pgUniqueViolation:
			return BadRequest(fmt.Sprintf("Duplicated field value: %s.", pe.ConstraintName))
		case pgInvalidTextRep, pgNumericOutOfRang:
			return BadRequest("Invalid value supplied.")
		case pgUndefinedColumn:
			return BadRequest("Unknown field in query.")
		case pgCheckViolation:
			return BadRequest(fmt.Sprintf("Validation error: %s.", pe.ConstraintName))
		case pgForeignKey:
			return BadRequest("Referenced resource does not exist.")
		}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized("Token expired. Please log in again.")
	}
	if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrSignatureInvalid) {
		return Unauthorized("Invalid token. Please log in again.")
	}

	return Wrap(err)
}
