package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"Invalid input data."`
}
