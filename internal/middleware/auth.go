package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bug-tracking-api/internal/constants"
	apierrors "github.com/yukikurage/bug-tracking-api/internal/errors"
)

// RequireAuth rejects requests that carry no login session. On success the
// session's user ID is copied into the request context for the handler.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the logged-in user's ID from the request context. Login
// stores the ID as uint64; any other shape means there is no valid session.
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := v.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}
