package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ListDocumentsResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

type HistoryResponse struct {
	Entries []ChatEntry `json:"entries"`
}
