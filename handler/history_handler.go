package handler

import (
	"net/http"

	"github.com/geeta-ai/geeta-be/middleware"
	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/gin-gonic/gin"
)

type HistoryHandler interface {
	HandleGetHistory(c *gin.Context)
	HandleClearHistory(c *gin.Context)
}

type historyHandler struct {
	sessions *service.SessionService
}

func NewHistoryHandler(sessions *service.SessionService) HistoryHandler {
	return &historyHandler{
		sessions: sessions,
	}
}

func (h *historyHandler) HandleGetHistory(c *gin.Context) {
	username := c.GetString(middleware.ContextKeyUsername)
	session, err := h.sessions.GetSession(c, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load session",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.HistoryResponse{
			Entries: session.History(),
		},
	})
}

func (h *historyHandler) HandleClearHistory(c *gin.Context) {
	username := c.GetString(middleware.ContextKeyUsername)
	session, err := h.sessions.GetSession(c, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load session",
		})
		return
	}
	if err := h.sessions.ClearHistory(c, username, session); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to clear history",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "History cleared",
	})
}
