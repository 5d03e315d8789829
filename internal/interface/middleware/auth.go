package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/meetup-api/pkg/helpers"
	"github.com/oksasatya/meetup-api/pkg/response"
)

// CtxUserIDKey is the Gin context key the authenticated user id is stored
// under for downstream handlers.
const CtxUserIDKey = "userID"

// Auth requires a bearer-scheme Authorization header carrying a valid token
// and injects the token's user id into the Gin context. The three failure
// modes answer with distinct messages so clients can tell a stale token from
// a broken one.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error[any](c, http.StatusUnauthorized, "invalid authorization format", nil)
			c.Abort()
			return
		}

		claims, err := jwt.Parse(parts[1])
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error[any](c, http.StatusUnauthorized, "token expired", nil)
			} else {
				response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
