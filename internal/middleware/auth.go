package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medipresence/presence-api/internal/handler"
	authsvc "github.com/medipresence/presence-api/internal/service/auth"
	"github.com/medipresence/presence-api/pkg/auth"
)

type AuthMiddleware struct {
	jwtService  auth.JWTService
	authService authsvc.AuthService
}

func NewAuthMiddleware(jwtService auth.JWTService, authService authsvc.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Authenticate verifies the bearer token and loads the user into context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		username, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		user, err := m.authService.GetByUsername(c.Request.Context(), username)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unknown user"))
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("account disabled"))
			c.Abort()
			return
		}

		c.Set(handler.ContextUser, user)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := handler.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
		c.Abort()
	}
}
