package middleware

import (
	"net/http"
	"strings"

	"github.com/geeta-ai/geeta-be/types"
	"github.com/geeta-ai/geeta-be/utils"
	"github.com/gin-gonic/gin"
)

// ContextKeyUsername is the gin context key the authenticated username is
// stored under.
const ContextKeyUsername = "username"

// AuthMiddleware validates the Bearer token and stores the authenticated
// username in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  false,
				Message: "Authorization header is required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  false,
				Message: "Authorization header format must be Bearer {token}",
			})
			return
		}

		claims, err := utils.ParseUserToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  false,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyUsername, claims.Username)
		c.Next()
	}
}
