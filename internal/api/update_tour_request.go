package api

import "time"

// UpdateTourRequest 為部分更新，nil 欄位表示不變更
// swagger:model api.UpdateTourRequest
type UpdateTourRequest struct {
	Name         *string     `json:"name" validate:"omitempty,min=10,max=40" example:"The Forest Hiker"`
	Duration     *int        `json:"duration" validate:"omitempty,min=1" example:"5"`
	MaxGroupSize *int        `json:"max_group_size" validate:"omitempty,min=1" example:"25"`
	Difficulty   *string     `json:"difficulty" validate:"omitempty,oneof=easy medium difficult" example:"medium"`
	Price        *float64    `json:"price" validate:"omitempty,gt=0" example:"497"`
	Summary      *string     `json:"summary"`
	Description  *string     `json:"description"`
	StartDates   []time.Time `json:"start_dates"`
}
