package handler

import (
	"net/http"

	"github.com/geeta-ai/geeta-be/middleware"
	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/gin-gonic/gin"
)

type AskHandler interface {
	HandleAsk(c *gin.Context)
	HandleAskWebSocket(c *gin.Context)
}

type askHandler struct {
	engine    *service.AnswerEngine
	sessions  *service.SessionService
	websocket *service.WebSocketService
}

func NewAskHandler(engine *service.AnswerEngine, sessions *service.SessionService, websocket *service.WebSocketService) AskHandler {
	return &askHandler{
		engine:    engine,
		sessions:  sessions,
		websocket: websocket,
	}
}

func (h *askHandler) HandleAsk(c *gin.Context) {
	username := c.GetString(middleware.ContextKeyUsername)
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	session, err := h.sessions.GetSession(c, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load session",
		})
		return
	}

	answer := h.engine.Answer(c, req.Question, session.Store.CombinedContext())
	if err := h.sessions.RecordChat(c, username, session, req.Question, answer); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to save chat history",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.AskResponse{
			Answer:           answer,
			EnabledFileCount: session.Store.EnabledCount(),
		},
	})
}

func (h *askHandler) HandleAskWebSocket(c *gin.Context) {
	username := c.GetString(middleware.ContextKeyUsername)
	h.websocket.HandleAsk(c.Writer, c.Request, username)
}
