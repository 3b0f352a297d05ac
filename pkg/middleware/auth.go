package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathwise/pathwise/internal/sessions"
	"github.com/pathwise/pathwise/internal/tokens"
)

// SessionKey is the gin context key holding the live *sessions.Session.
const SessionKey = "session"

// AuthMiddleware verifies the Bearer JWT and resolves its sid claim
// against the session store. A token whose session was destroyed (logout,
// expiry) is rejected even when the signature is still valid.
func AuthMiddleware(secret string, svc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var raw string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &raw); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := tokens.ParseAccessToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}

		sess, err := svc.Validate(c.Request.Context(), tokens.SessionID(claims))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("claims", map[string]interface{}(claims))
		c.Set(SessionKey, sess)
		c.Next()
	}
}
