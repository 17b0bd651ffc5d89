// File: internal/model/tour.go
package model

import "time"

type Tour struct {
	ID              int         `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Duration        int         `db:"duration" json:"duration"`
	MaxGroupSize    int         `db:"max_group_size" json:"max_group_size"`
	Difficulty      string      `db:"difficulty" json:"difficulty"`
	Price           float64     `db:"price" json:"price"`
	RatingsAverage  float64     `db:"ratings_average" json:"ratings_average"`
	RatingsQuantity int         `db:"ratings_quantity" json:"ratings_quantity"`
	Summary         string      `db:"summary" json:"summary"`
	Description     string      `db:"description" json:"description"`
	StartDates      []time.Time `db:"start_dates" json:"start_dates"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}

var TourColumns = []string{
	"id", "name", "duration", "max_group_size", "difficulty", "price",
	"ratings_average", "ratings_quantity", "summary", "description",
	"start_dates", "created_at", "updated_at",
}

var TourHiddenColumns = []string{"updated_at"}

// TourPatch 表示部分更新，nil 欄位保持原值
type TourPatch struct {
	Name         *string
	Duration     *int
	MaxGroupSize *int
	Difficulty   *string
	Price        *float64
	Summary      *string
	Description  *string
	StartDates   []time.Time
}

// TourStat 為以難度分組的統計結果
type TourStat struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int64   `json:"num_tours"`
	NumRatings int64   `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// MonthlyPlanEntry 為指定年份內每月出團統計
type MonthlyPlanEntry struct {
	Month      int      `json:"month"`
	TourStarts int64    `json:"tour_starts"`
	Tours      []string `json:"tours"`
}
