package api

// swagger:model api.ResetPasswordRequest
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8" example:"NewSecret456!"`
	PasswordConfirm string `json:"password_confirm" validate:"required" example:"NewSecret456!"`
}
