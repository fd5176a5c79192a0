package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/response"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		tokenStr, ok := bearerToken(h)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalJWT sets the user id when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalJWT(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := jwtService.ValidateToken(tokenStr); err == nil {
				c.Set(UserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUserID returns the authenticated user id, or 0 for anonymous
// requests.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
