package store

import (
	"context"
	"fmt"
	"net/url"

	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/query"

	"github.com/jackc/pgx/v5"
)

const tourSelectColumns = `id, name, duration, max_group_size, difficulty, price,
	ratings_average, ratings_quantity, summary, description, start_dates, created_at`

func scanTour(row pgx.Row, op string) (*model.Tour, error) {
	t := &model.Tour{}
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Duration,
		&t.MaxGroupSize,
		&t.Difficulty,
		&t.Price,
		&t.RatingsAverage,
		&t.RatingsQuantity,
		&t.Summary,
		&t.Description,
		&t.StartDates,
		&t.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func CreateTour(ctx context.Context, db database.DB, t *model.Tour) (*model.Tour, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tours
		   (name, duration, max_group_size, difficulty, price, summary, description, start_dates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, ratings_average, ratings_quantity, created_at`,
		t.Name,
		t.Duration,
		t.MaxGroupSize,
		t.Difficulty,
		t.Price,
		t.Summary,
		t.Description,
		t.StartDates,
	)
	if err := row.Scan(&t.ID, &t.RatingsAverage, &t.RatingsQuantity, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTour: %w", err)
	}
	return t, nil
}

func GetTourByID(ctx context.Context, db database.DB, tourID int) (*model.Tour, error) {
	row := db.QueryRow(ctx,
		`SELECT `+tourSelectColumns+` FROM tours WHERE id = $1`,
		tourID,
	)
	return scanTour(row, "GetTourByID")
}

// ListTours 以查詢建構器執行過濾、排序、投影與分頁
func ListTours(ctx context.Context, db database.DB, params url.Values) ([]map[string]any, error) {
	sql, args := query.New("tours", model.TourColumns, model.TourHiddenColumns, params).
		Filter().
		Sort().
		Select().
		Paginate().
		Build()

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTours: %w", err)
	}
	tours, err := scanMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("ListTours: %w", err)
	}
	return tours, nil
}

// UpdateTour 部分更新：nil 欄位保持原值
func UpdateTour(ctx context.Context, db database.DB, tourID int, patch *model.TourPatch) (*model.Tour, error) {
	row := db.QueryRow(ctx,
		`UPDATE tours
		 SET name = COALESCE($2, name),
		     duration = COALESCE($3, duration),
		     max_group_size = COALESCE($4, max_group_size),
		     difficulty = COALESCE($5, difficulty),
		     price = COALESCE($6, price),
		     summary = COALESCE($7, summary),
		     description = COALESCE($8, description),
		     start_dates = COALESCE($9, start_dates),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+tourSelectColumns,
		tourID,
		patch.Name,
		patch.Duration,
		patch.MaxGroupSize,
		patch.Difficulty,
		patch.Price,
		patch.Summary,
		patch.Description,
		patch.StartDates,
	)
	return scanTour(row, "UpdateTour")
}

func DeleteTour(ctx context.Context, db database.DB, tourID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
	if err != nil {
		return fmt.Errorf("DeleteTour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTour: %w", pgx.ErrNoRows)
	}
	return nil
}

// TourStats 以難度分組統計評分良好的行程
func TourStats(ctx context.Context, db database.DB) ([]model.TourStat, error) {
	rows, err := db.Query(ctx,
		`SELECT upper(difficulty) AS difficulty,
		        count(*) AS num_tours,
		        sum(ratings_quantity) AS num_ratings,
		        avg(ratings_average) AS avg_rating,
		        avg(price) AS avg_price,
		        min(price) AS min_price,
		        max(price) AS max_price
		 FROM tours
		 WHERE ratings_average >= 4.5
		 GROUP BY upper(difficulty)
		 ORDER BY avg_price`,
	)
	if err != nil {
		return nil, fmt.Errorf("TourStats: %w", err)
	}
	defer rows.Close()

	stats := []model.TourStat{}
	for rows.Next() {
		var s model.TourStat
		if err := rows.Scan(
			&s.Difficulty,
			&s.NumTours,
			&s.NumRatings,
			&s.AvgRating,
			&s.AvgPrice,
			&s.MinPrice,
			&s.MaxPrice,
		); err != nil {
			return nil, fmt.Errorf("TourStats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("TourStats: %w", err)
	}
	return stats, nil
}

// MonthlyPlan 統計指定年份每月的出團數量與行程名稱
func MonthlyPlan(ctx context.Context, db database.DB, year int) ([]model.MonthlyPlanEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT extract(month FROM d)::int AS month,
		        count(*) AS tour_starts,
		        array_agg(name ORDER BY name) AS tours
		 FROM tours, unnest(start_dates) AS d
		 WHERE d >= make_date($1, 1, 1) AND d < make_date($1 + 1, 1, 1)
		 GROUP BY 1
		 ORDER BY tour_starts DESC, month`,
		year,
	)
	if err != nil {
		return nil, fmt.Errorf("MonthlyPlan: %w", err)
	}
	defer rows.Close()

	plan := []model.MonthlyPlanEntry{}
	for rows.Next() {
		var e model.MonthlyPlanEntry
		if err := rows.Scan(&e.Month, &e.TourStarts, &e.Tours); err != nil {
			return nil, fmt.Errorf("MonthlyPlan: %w", err)
		}
		plan = append(plan, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MonthlyPlan: %w", err)
	}
	return plan, nil
}
