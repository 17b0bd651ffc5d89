package reviews

import (
	"net/http"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/middleware"
	"tourbase/internal/model"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	createReview = store.CreateReview
	listReviews  = store.ListReviews
)

// ListReviewsHandler 列出評論，支援過濾、排序、欄位選取與分頁
// @Summary     List reviews
// @Tags        reviews
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     400 {object} api.ErrorResponse
// @Router      /reviews [get]
func ListReviewsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		reviews, err := listReviews(c.Request().Context(), db, c.QueryParams())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.SuccessList(len(reviews), reviews))
	}
}

// CreateReviewHandler 建立評論，作者一律取自登入身分
// @Summary     Create a review
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Param       body body api.CreateReviewRequest true "評論資料"
// @Success     201  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /reviews [post]
func CreateReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperr.Unauthorized("Please log in to get access.")
		}

		var req api.CreateReviewRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		review, err := createReview(c.Request().Context(), db, &model.Review{
			Review: req.Review,
			Rating: req.Rating,
			TourID: req.TourID,
			UserID: user.ID,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.Success(review))
	}
}
