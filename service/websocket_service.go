package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/geeta-ai/geeta-be/types"
	"github.com/gorilla/websocket"
)

type WebSocketService struct {
	engine   *AnswerEngine
	sessions *SessionService
	upgrader websocket.Upgrader
}

func NewWebSocketService(engine *AnswerEngine, sessions *SessionService) *WebSocketService {
	return &WebSocketService{
		engine:   engine,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

// HandleAsk runs the question/answer loop over a websocket connection.
// Long questions report chunk progress as separate frames before the final
// answer frame.
func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request, username string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx := r.Context()
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			log.Println("Unmarshal error:", err)
			s.writeError(conn, "invalid message")
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			log.Println("Marshal error:", err)
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketAsk:
			var payload types.WebSocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, "invalid ask payload")
				continue
			}

			session, err := s.sessions.GetSession(ctx, username)
			if err != nil {
				log.Println("Session error:", err)
				s.writeError(conn, "failed to load session")
				continue
			}

			progress := func(processed, total int) {
				frame := types.WebSocketResponse{
					Type: types.TypeWebsocketProcessing,
					Payload: types.WebSocketProcessingPayload{
						ProcessedChunks: processed,
						TotalChunks:     total,
					},
				}
				if err := conn.WriteJSON(frame); err != nil {
					log.Println("Write error:", err)
				}
			}

			answer := s.engine.AnswerWithProgress(ctx, payload.Question, session.Store.CombinedContext(), progress)
			if err := s.sessions.RecordChat(ctx, username, session, payload.Question, answer); err != nil {
				log.Println("Failed to record chat:", err)
			}

			res := types.WebSocketResponse{
				Type: types.TypeWebsocketAnswer,
				Payload: types.WebSocketAnswerPayload{
					Answer:           answer,
					EnabledFileCount: session.Store.EnabledCount(),
				},
			}
			if err := conn.WriteJSON(res); err != nil {
				log.Println("Write error:", err)
			}

		case types.TypeWebsocketPing:
			pong := types.WebSocketResponse{Type: types.TypeWebsocketPong}
			if err := conn.WriteJSON(pong); err != nil {
				log.Println("Write error:", err)
			}

		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorPayload{Message: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
