// File: internal/model/review.go
package model

import "time"

type Review struct {
	ID        int       `db:"id" json:"id"`
	Review    string    `db:"review" json:"review"`
	Rating    int       `db:"rating" json:"rating"`
	TourID    int       `db:"tour_id" json:"tour_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

var ReviewColumns = []string{
	"id", "review", "rating", "tour_id", "user_id", "created_at", "updated_at",
}

var ReviewHiddenColumns = []string{"updated_at"}
