package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "auth_user_id"
	userRoleKey = "auth_user_role"
)

// RequireAuth validates the Bearer token and stores the user claims on the
// context. Disabled entirely when the AUTH_DISABLED env flag is set (local
// development and tests).
func RequireAuth(secret string, disabled bool) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if disabled {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ada"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["user_id"].(float64); ok {
				c.Set(userIDKey, int64(id))
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(userRoleKey, role)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, zero when absent.
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
