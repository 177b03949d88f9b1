package handler

import (
	"errors"
	"net/http"

	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/geeta-ai/geeta-be/utils"
	"github.com/gin-gonic/gin"
)

type LoginHandler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
}

type loginHandler struct {
	userService service.UserService
}

func NewLoginHandler(userService service.UserService) LoginHandler {
	return &loginHandler{
		userService: userService,
	}
}

func (h *loginHandler) HandleRegister(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	if err := h.userService.Register(c, &req); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrPasswordTooShort) {
			status = http.StatusBadRequest
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "Registered successfully",
	})
}

func (h *loginHandler) HandleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userService.Login(c, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	token, err := utils.GenerateUserToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "Login successful",
		Data:    types.LoginResponse{AccessToken: token},
	})
}
