package api

// 所有成功回應都走同一個信封格式

const StatusSuccess = "success"

// swagger:model api.Envelope
type Envelope struct {
	Status  string `json:"status" example:"success"`
	Results *int   `json:"results,omitempty" example:"10"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success 包裝單一資料物件
func Success(data any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// SuccessList 包裝集合並附上筆數
func SuccessList(results int, data any) Envelope {
	return Envelope{Status: StatusSuccess, Results: &results, Data: data}
}
