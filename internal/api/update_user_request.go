package api

// UpdateUserRequest 為管理者更新，空欄位表示不變更
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
	Role  string `json:"role" example:"guide"`
}
