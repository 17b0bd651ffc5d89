// File: internal/apperr/handler.go
package apperr

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// ErrorHandler 回傳集中式的 echo 錯誤處理器，所有失敗一律由此渲染
// dev 模式回傳完整細節；否則非操作型錯誤一律收斂為泛用 500 訊息
func ErrorHandler(dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ae := Classify(err)

		var body map[string]any
		switch {
		case dev:
			body = map[string]any{
				"status":  ae.StatusClass(),
				"message": ae.Message,
				"error":   fmt.Sprintf("%+v", err),
				"stack":   string(debug.Stack()),
			}
		case ae.Operational:
			body = map[string]any{
				"status":  ae.StatusClass(),
				"message": ae.Message,
			}
		default:
			c.Logger().Errorf("unexpected error: %v", err)
			body = map[string]any{
				"status":  "error",
				"message": "Something went very wrong.",
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.Code)
			return
		}
		_ = c.JSON(ae.Code, body)
	}
}
