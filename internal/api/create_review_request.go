package api

// swagger:model api.CreateReviewRequest
type CreateReviewRequest struct {
	Review string `json:"review" validate:"required" example:"Amazing experience, would go again!"`
	Rating int    `json:"rating" validate:"required,min=1,max=5" example:"5"`
	TourID int    `json:"tour_id" validate:"required" example:"7"`
}
