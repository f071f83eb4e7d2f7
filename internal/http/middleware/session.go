package middleware

import (
	"net/http"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key the session middleware fills in.
const ContextUserID = "user_id"

// RequireSession validates the session cookie and puts the user id into
// the request context. Requests without a valid session are redirected
// to the login page.
func RequireSession(sessions *service.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(service.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		userID, err := sessions.Parse(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
