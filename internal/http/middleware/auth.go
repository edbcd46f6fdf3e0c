package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tours/internal/domain"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	usernameKey = "username"
)

// TokenParser verifies a bearer token and returns the caller it names.
type TokenParser interface {
	ParseToken(raw string) (domain.RequestContext, error)
}

// AuthOptional reads a Bearer token when present. Requests without a token,
// or with an invalid one, continue anonymously.
func AuthOptional(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw != "" && p != nil {
			if rc, err := p.ParseToken(raw); err == nil {
				c.Set(userIDKey, int64(rc.UserID))
				c.Set(userRoleKey, rc.Role)
				c.Set(usernameKey, rc.Username)
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Actor returns the caller set by AuthOptional; zero value when anonymous.
func Actor(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID:   domain.ID(c.GetInt64(userIDKey)),
		Role:     c.GetString(userRoleKey),
		Username: c.GetString(usernameKey),
	}
}

// RequireRoles rejects anonymous callers with 401 and callers outside
// allowedRoles with 403. With no roles any signed-in user passes.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		if len(allowedRoles) == 0 {
			c.Next()
			return
		}
		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "forbidden",
			"request_id": GetRequestID(c),
		})
	}
}
