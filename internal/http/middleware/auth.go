package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

// TokenVerifier checks a bearer token and returns the subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAdmin gates staff-only routes behind a bearer token.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization required",
			})
			return
		}

		sub, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(authUserKey, sub)
		c.Next()
	}
}

// AuthUser returns the authenticated subject, empty when anonymous.
func AuthUser(c *gin.Context) string {
	if v, ok := c.Get(authUserKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
