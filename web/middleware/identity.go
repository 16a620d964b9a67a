package middleware

import (
	"strings"

	"enabl-chat/chat"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ContextUserKey is where the resolved user id lives on the gin context.
const ContextUserKey = "userID"

// ContextNameKey is where the caller's display name lives, when the token
// carries one.
const ContextNameKey = "userName"

// IdentityMiddleware resolves the caller's identity from a bearer token.
// Absent, malformed, or unverifiable tokens degrade to the guest identity
// rather than rejecting the request; chat works the same either way, only
// history features differ.
func IdentityMiddleware(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, chat.GuestUserID)

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		if jwtSecret == "" {
			logger.Debug("Bearer token presented but no JWT secret configured, treating as guest")
			c.Next()
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			logger.Debug("Invalid bearer token, treating as guest", zap.Error(err))
			c.Next()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			logger.Debug("Bearer token missing subject, treating as guest")
			c.Next()
			return
		}

		c.Set(ContextUserKey, sub)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if name, ok := claims["name"].(string); ok && name != "" {
				c.Set(ContextNameKey, name)
			}
		}
		c.Next()
	}
}

// UserID returns the identity the middleware resolved for this request.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return chat.GuestUserID
}

// UserName returns the caller's display name, or empty when the token
// carried none.
func UserName(c *gin.Context) string {
	if v, ok := c.Get(ContextNameKey); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
