package api

// swagger:model api.SignupRequest
type SignupRequest struct {
	Name            string `json:"name" validate:"required" example:"Alice"`
	Email           string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password        string `json:"password" validate:"required,min=8" example:"Secret123!"`
	PasswordConfirm string `json:"password_confirm" validate:"required" example:"Secret123!"`
	Role            string `json:"role" example:"user"`
}
