package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// authRequired guards a route group with bearer-token authentication.
// A missing token and an invalid/expired one are distinct failures:
// 401 for the former, 403 for the latter.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := s.users.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
