package types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ToggleDocumentRequest struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

type RemoveDocumentRequest struct {
	ID string `json:"id"`
}
