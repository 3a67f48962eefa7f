package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "quizSessionID"

// QuizSession issues an anonymous session key cookie when the request does
// not carry one yet and stashes the key in the request context. There are no
// user accounts; the cookie is the whole identity.
func QuizSession(cookieName string, maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(cookieName, sid, maxAgeSeconds, "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// GetSessionID returns the quiz session key for the current request.
func GetSessionID(c *gin.Context) string {
	if sid, ok := c.Get(sessionContextKey); ok {
		return sid.(string)
	}
	return ""
}
