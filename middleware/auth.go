package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pos-backend/models"
	"pos-backend/services"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated username on the context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "Invalid authorization header")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("username", sub)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{IsSuccess: false, Message: message})
}
