package api

// UpdateMeRequest 只允許更新個人資料欄位
// Password 欄位保留下來是為了偵測誤用並明確拒絕
// swagger:model api.UpdateMeRequest
type UpdateMeRequest struct {
	Name            string `json:"name" example:"Alice"`
	Email           string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
	Password        string `json:"password,omitempty" swaggerignore:"true"`
	PasswordConfirm string `json:"password_confirm,omitempty" swaggerignore:"true"`
}
