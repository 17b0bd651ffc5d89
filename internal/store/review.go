package store

import (
	"context"
	"fmt"
	"net/url"

	"tourbase/internal/database"
	"tourbase/internal/model"
	"tourbase/internal/query"
)

func CreateReview(ctx context.Context, db database.DB, r *model.Review) (*model.Review, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO reviews (review, rating, tour_id, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		r.Review,
		r.Rating,
		r.TourID,
		r.UserID,
	)
	if err := row.Scan(&r.ID, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateReview: %w", err)
	}
	return r, nil
}

// ListReviews 以查詢建構器執行過濾、排序、投影與分頁
func ListReviews(ctx context.Context, db database.DB, params url.Values) ([]map[string]any, error) {
	sql, args := query.New("reviews", model.ReviewColumns, model.ReviewHiddenColumns, params).
		Filter().
		Sort().
		Select().
		Paginate().
		Build()

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ListReviews: %w", err)
	}
	reviews, err := scanMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("ListReviews: %w", err)
	}
	return reviews, nil
}
