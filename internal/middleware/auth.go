package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vikash-ftw/VideoTube-Backend/internal/auth"
	"github.com/vikash-ftw/VideoTube-Backend/internal/util"
)

// ExtractAccessToken pulls the access token from the request. The
// "accessToken" cookie wins over the Authorization header when both
// are present.
func ExtractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Auth validates the access token and loads the authenticated user
// into the context under "user" and "user_id". Requests without a
// valid token are rejected with 401.
func Auth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractAccessToken(c)
		if token == "" {
			util.RespondUnauthorized(c, "no access token provided")
			c.Abort()
			return
		}

		user, err := authService.ValidateAccessToken(token)
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired access token")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present but never
// rejects the request. Used by endpoints that behave differently for
// signed-in viewers.
func OptionalAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractAccessToken(c)
		if token != "" {
			if user, err := authService.ValidateAccessToken(token); err == nil {
				c.Set("user", user)
				c.Set("user_id", user.ID)
			}
		}
		c.Next()
	}
}
