package api

import "time"

// swagger:model api.CreateTourRequest
type CreateTourRequest struct {
	Name         string      `json:"name" validate:"required,min=10,max=40" example:"The Forest Hiker"`
	Duration     int         `json:"duration" validate:"required,min=1" example:"5"`
	MaxGroupSize int         `json:"max_group_size" validate:"required,min=1" example:"25"`
	Difficulty   string      `json:"difficulty" validate:"required,oneof=easy medium difficult" example:"easy"`
	Price        float64     `json:"price" validate:"required,gt=0" example:"397"`
	Summary      string      `json:"summary" validate:"required" example:"Breathtaking hike through the Canadian Banff National Park"`
	Description  string      `json:"description"`
	StartDates   []time.Time `json:"start_dates"`
}
