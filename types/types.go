package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketAsk        = "ask"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAskPayload struct {
	Question string `json:"question"`
}

type WebSocketAnswerPayload struct {
	Answer           string `json:"answer"`
	EnabledFileCount int    `json:"enabled_file_count"`
}

// WebSocketProcessingPayload reports chunked-fallback progress: how many
// context chunks have been queried out of the total.
type WebSocketProcessingPayload struct {
	ProcessedChunks int `json:"processed_chunks"`
	TotalChunks     int `json:"total_chunks"`
}

type WebSocketErrorPayload struct {
	Message string `json:"message"`
}
