package handlers

import (
	"fmt"
	"net/http"

	"birthdaybook/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireOwner guards every owner-scoped route: the path's :username
// must match the authenticated session username exactly. On mismatch
// the requested path is remembered so a successful sign-in can resume
// it, and the request is redirected to the sign-in page.
func (h *Handler) RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed := c.Param("username")
		authenticated, _ := currentUser(c)

		if authenticated == "" || authenticated != claimed {
			session := sessions.Default(c)
			session.Set(sessionRequestedPath, c.Request.URL.Path)
			session.Set(sessionMessage, fmt.Sprintf("You must be logged in as %s to do that.", claimed))
			if err := session.Save(); err != nil {
				h.logger.Error("Failed to save session", "error", err)
			}
			c.Redirect(http.StatusFound, "/sign_in")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
