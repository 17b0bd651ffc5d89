package api

// swagger:model api.UpdateMyPasswordRequest
type UpdateMyPasswordRequest struct {
	PasswordCurrent string `json:"password_current" validate:"required" example:"OldSecret123!"`
	Password        string `json:"password" validate:"required,min=8" example:"NewSecret456!"`
	PasswordConfirm string `json:"password_confirm" validate:"required" example:"NewSecret456!"`
}
