package router

import (
	"github.com/labstack/echo/v4"

	"tourbase/internal/cache"
	"tourbase/internal/config"
	"tourbase/internal/database"
	"tourbase/internal/handler"
	"tourbase/internal/handler/auth"
	"tourbase/internal/handler/reviews"
	"tourbase/internal/handler/tours"
	"tourbase/internal/handler/users"
	"tourbase/internal/mailer"
	"tourbase/internal/middleware"
	"tourbase/internal/model"
	"tourbase/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, cfg *config.Config, m mailer.Mailer, pool worker.Pool) {
	api := e.Group("/api", middleware.RateLimit(rdb, cfg.RateLimitMax, cfg.RateLimitWindow))

	// 健康檢查
	api.GET("/health", handler.HealthHandler(db, rdb))

	v1 := api.Group("/v1")

	// 認證流程
	v1.POST("/users/signup", auth.SignupHandler(db, cfg))
	v1.POST("/users/login", auth.LoginHandler(db, cfg))
	v1.POST("/users/forgotPassword", auth.ForgotPasswordHandler(db, m, pool))
	v1.PATCH("/users/resetPassword/:token", auth.ResetPasswordHandler(db, cfg))

	// 當前使用者自助操作
	v1.GET("/users/me", users.GetMeHandler(db), middleware.RequireAuth(db))
	v1.PATCH("/users/updateMe", users.UpdateMeHandler(db), middleware.RequireAuth(db))
	v1.DELETE("/users/deleteMe", users.DeleteMeHandler(db), middleware.RequireAuth(db))
	v1.PATCH("/users/updateMyPassword", users.UpdateMyPasswordHandler(db, cfg), middleware.RequireAuth(db))

	// Users CRUD：讀取需登入，寫入限管理員
	v1Users := v1.Group("/users", middleware.RequireAuth(db))
	v1Users.GET("", users.ListUsersHandler(db))
	v1Users.GET("/:id", users.GetUserHandler(db))
	v1Users.POST("", users.CreateUserHandler(db), middleware.RequireRoles(model.RoleAdmin))
	v1Users.PATCH("/:id", users.UpdateUserHandler(db), middleware.RequireRoles(model.RoleAdmin))
	v1Users.DELETE("/:id", users.DeleteUserHandler(db), middleware.RequireRoles(model.RoleAdmin))

	// 行程：讀取公開，寫入限 admin/lead-guide
	v1Tours := v1.Group("/tours")
	v1Tours.GET("", tours.ListToursHandler(db))
	v1Tours.GET("/top-5-cheap", tours.TopToursHandler(db))
	v1Tours.GET("/stats", tours.TourStatsHandler(db))
	v1Tours.GET("/monthly-plan/:year", tours.MonthlyPlanHandler(db),
		middleware.RequireAuth(db), middleware.RequireRoles(model.RoleAdmin, model.RoleLeadGuide, model.RoleGuide))
	v1Tours.GET("/:id", tours.GetTourHandler(db))
	v1Tours.POST("", tours.CreateTourHandler(db),
		middleware.RequireAuth(db), middleware.RequireRoles(model.RoleAdmin, model.RoleLeadGuide))
	v1Tours.PATCH("/:id", tours.UpdateTourHandler(db),
		middleware.RequireAuth(db), middleware.RequireRoles(model.RoleAdmin, model.RoleLeadGuide))
	v1Tours.DELETE("/:id", tours.DeleteTourHandler(db),
		middleware.RequireAuth(db), middleware.RequireRoles(model.RoleAdmin, model.RoleLeadGuide))

	// 評論：讀取公開，建立限一般使用者
	v1Reviews := v1.Group("/reviews")
	v1Reviews.GET("", reviews.ListReviewsHandler(db))
	v1Reviews.POST("", reviews.CreateReviewHandler(db),
		middleware.RequireAuth(db), middleware.RequireRoles(model.RoleUser))
}
