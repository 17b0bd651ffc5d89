package handler

import (
	"net/http"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/cache"
	"tourbase/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查，同時確認資料庫與 Redis 連線
// @Summary     Health Check
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     500 {object} api.ErrorResponse
// @Router      /health [get]
func HealthHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return apperr.Internal("Database unhealthy.")
		}
		if err := rdb.Set(ctx, "healthcheck", "ok", 0).Err(); err != nil {
			return apperr.Internal("Cache unhealthy.")
		}
		return c.JSON(http.StatusOK, api.Envelope{Status: api.StatusSuccess, Message: "ok"})
	}
}
