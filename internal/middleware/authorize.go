package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tawsila/internal/models"
)

// RequireAnyRole gates a route on the caller's full role set, not just the
// active one: a seller browsing as a buyer keeps seller access. Runs after
// Auth, so a missing identity here still answers 401.
func RequireAnyRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get(CtxUser)
		if !exists {
			unauthorized(c)
			return
		}
		user, ok := userVal.(models.User)
		if !ok {
			unauthorized(c)
			return
		}

		if !models.CanAccess(&user, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the context. The second
// return is false on anonymous requests behind OptionalAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get(CtxUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
