package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"partage/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxProfileIDKey   = "profile_id"
	ctxProfileRoleKey = "profile_role"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxProfileIDKey, claims.ProfileID)
		c.Set(ctxProfileRoleKey, claims.Role)
		c.Next()
	}
}

func GetProfileID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxProfileIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetProfileIDString(c *gin.Context) string {
	if id, ok := GetProfileID(c); ok {
		return id.String()
	}
	return ""
}

func GetProfileRole(c *gin.Context) string {
	if v, exists := c.Get(ctxProfileRoleKey); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
