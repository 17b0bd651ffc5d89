package api

import "tourbase/internal/model"

// AuthResponse 於登入、註冊與密碼重設後回傳工作階段令牌與使用者
// swagger:model api.AuthResponse
type AuthResponse struct {
	Status string      `json:"status" example:"success"`
	Token  string      `json:"token"`
	Data   *model.User `json:"data,omitempty"`
}
