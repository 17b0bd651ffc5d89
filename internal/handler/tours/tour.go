package tours

import (
	"net/http"
	"net/url"
	"strconv"

	"tourbase/internal/api"
	"tourbase/internal/apperr"
	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試可覆寫
var (
	createTour  = store.CreateTour
	getTourByID = store.GetTourByID
	listTours   = store.ListTours
	updateTour  = store.UpdateTour
	deleteTour  = store.DeleteTour
	tourStats   = store.TourStats
	monthlyPlan = store.MonthlyPlan
)

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid tour ID.")
	}
	return id, nil
}

// ListToursHandler 列出行程，支援過濾、排序、欄位選取與分頁
// @Summary     List tours
// @Description 查詢參數支援 field 與 field[gte|gt|lte|lt] 過濾、sort、fields、page、limit
// @Tags        tours
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     400 {object} api.ErrorResponse
// @Router      /tours [get]
func ListToursHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tours, err := listTours(c.Request().Context(), db, c.QueryParams())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.SuccessList(len(tours), tours))
	}
}

// TopToursHandler 為 top-5-cheap 別名路由，覆寫查詢參數後走同一條列表邏輯
// @Summary     Top 5 cheap tours
// @Description 預設 limit=5、sort=-ratings_average,price 與固定欄位集
// @Tags        tours
// @Produce     json
// @Success     200 {object} api.Envelope
// @Router      /tours/top-5-cheap [get]
func TopToursHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := url.Values{}
		params.Set("limit", "5")
		params.Set("sort", "-ratings_average,price")
		params.Set("fields", "name,price,ratings_average,summary,difficulty")

		tours, err := listTours(c.Request().Context(), db, params)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.SuccessList(len(tours), tours))
	}
}

// CreateTourHandler 建立新行程
// @Summary     Create a tour
// @Tags        tours
// @Accept      json
// @Produce     json
// @Param       body body api.CreateTourRequest true "行程資料"
// @Success     201  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tours [post]
func CreateTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTourRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		tour, err := createTour(c.Request().Context(), db, &model.Tour{
			Name:         req.Name,
			Duration:     req.Duration,
			MaxGroupSize: req.MaxGroupSize,
			Difficulty:   req.Difficulty,
			Price:        req.Price,
			Summary:      req.Summary,
			Description:  req.Description,
			StartDates:   req.StartDates,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.Success(tour))
	}
}

// GetTourHandler 透過 ID 取得單一行程
// @Summary     Get a tour by ID
// @Tags        tours
// @Produce     json
// @Param       id  path int true "行程 ID"
// @Success     200 {object} api.Envelope
// @Failure     404 {object} api.ErrorResponse
// @Router      /tours/{id} [get]
func GetTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		tour, err := getTourByID(c.Request().Context(), db, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(tour))
	}
}

// UpdateTourHandler 部分更新行程
// @Summary     Update a tour
// @Tags        tours
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "行程 ID"
// @Param       body body api.UpdateTourRequest true "更新欄位"
// @Success     200  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tours/{id} [patch]
func UpdateTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var req api.UpdateTourRequest
		if err := c.Bind(&req); err != nil {
			return apperr.BadRequest("Invalid request body.")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		tour, err := updateTour(c.Request().Context(), db, id, &model.TourPatch{
			Name:         req.Name,
			Duration:     req.Duration,
			MaxGroupSize: req.MaxGroupSize,
			Difficulty:   req.Difficulty,
			Price:        req.Price,
			Summary:      req.Summary,
			Description:  req.Description,
			StartDates:   req.StartDates,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(tour))
	}
}

// DeleteTourHandler 刪除行程
// @Summary     Delete a tour
// @Tags        tours
// @Param       id path int true "行程 ID"
// @Success     204 "No Content"
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tours/{id} [delete]
func DeleteTourHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := deleteTour(c.Request().Context(), db, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// TourStatsHandler 回傳以難度分組的行程統計
// @Summary     Tour statistics
// @Tags        tours
// @Produce     json
// @Success     200 {object} api.Envelope
// @Router      /tours/stats [get]
func TourStatsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := tourStats(c.Request().Context(), db)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(stats))
	}
}

// MonthlyPlanHandler 回傳指定年份每月出團統計
// @Summary     Monthly plan
// @Tags        tours
// @Produce     json
// @Param       year path int true "年份"
// @Success     200  {object} api.Envelope
// @Failure     400  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tours/monthly-plan/{year} [get]
func MonthlyPlanHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		year, err := strconv.Atoi(c.Param("year"))
		if err != nil || year < 1900 || year > 2999 {
			return apperr.BadRequest("Invalid year.")
		}
		plan, err := monthlyPlan(c.Request().Context(), db, year)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.Success(plan))
	}
}
