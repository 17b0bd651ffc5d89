package middleware

import (
	"time"

	"tourbase/internal/apperr"
	"tourbase/internal/cache"

	"github.com/labstack/echo/v4"
)

// RateLimit 以 Redis 計數器實作固定視窗限流（每個來源 IP 一個視窗）
// 計數與設定過期在同一個 pipeline 往返內完成，超過上限回 429
// EXPIRE NX 只在鍵尚無過期時間時生效，殘留的無期限計數器也會被補上視窗
// Redis 故障時放行，限流不可成為服務的單點
func RateLimit(rdb cache.Cache, max int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + c.RealIP()

			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}
			if incr.Val() > int64(max) {
				return apperr.TooManyRequests("Too many requests from this IP. Please try again later.")
			}
			return next(c)
		}
	}
}
