package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/auth"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and sets the caller identity in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(ContextRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, httputil.Response{Status: "error", Message: "access denied"})
		c.Abort()
	}
}

// CallerFromContext rebuilds the caller identity set by Authenticate.
func CallerFromContext(c *gin.Context) (model.Caller, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return model.Caller{}, false
	}
	return model.Caller{
		ID:   id,
		Role: model.Role(c.GetString(ContextRole)),
	}, true
}
