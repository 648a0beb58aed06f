// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourvia/internal/domain"
	"tourvia/internal/services"
)

// UserContextKey is the key used to store the authenticated user in the
// request context.
const UserContextKey = "user"

// AuthMiddleware provides authentication middleware functionality.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth middleware that requires valid JWT authentication.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.extractUser(c)
		if err != nil {
			m.handleAuthError(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth extracts the user when a token is present but lets anonymous
// requests through. Used by endpoints that accept both, like inquiries.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := m.extractUser(c); err == nil && user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// RequireAdmin requires a valid session whose user is in the admin allowlist.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.extractUser(c)
		if err != nil {
			m.handleAuthError(c, err)
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "AUTHORIZATION_ERROR",
					"code":    "NOT_ADMIN",
					"message": "Admin access required",
				},
			})
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// extractUser extracts and validates the user from the request.
func (m *AuthMiddleware) extractUser(c *gin.Context) (*domain.User, error) {
	token := m.extractTokenFromHeader(c)
	if token == "" {
		token = m.extractTokenFromCookie(c)
	}
	if token == "" {
		return nil, domain.NewAuthenticationError("MISSING_TOKEN", "Authentication token required")
	}

	return m.authService.ValidateToken(c.Request.Context(), token)
}

// extractTokenFromHeader extracts a bearer token from the Authorization header.
func (m *AuthMiddleware) extractTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// extractTokenFromCookie extracts the access token cookie.
func (m *AuthMiddleware) extractTokenFromCookie(c *gin.Context) string {
	cookie, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return cookie
}

// handleAuthError responds with a consistent auth failure envelope.
func (m *AuthMiddleware) handleAuthError(c *gin.Context, err error) {
	statusCode := http.StatusUnauthorized
	code := "AUTHENTICATION_FAILED"
	if domainErr, ok := err.(*domain.Error); ok {
		code = domainErr.Code
		if domainErr.Type == domain.AuthorizationError {
			statusCode = http.StatusForbidden
		}
	}

	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"type":    "AUTHENTICATION_ERROR",
			"code":    code,
			"message": "Authentication required",
		},
	})
	c.Abort()
}

func setUser(c *gin.Context, user *domain.User) {
	c.Set(UserContextKey, user)
	c.Set("user_id", user.ID)
}

// GetUser returns the authenticated user stored by the auth middleware, or
// nil for anonymous requests.
func GetUser(c *gin.Context) *domain.User {
	if value, exists := c.Get(UserContextKey); exists {
		if user, ok := value.(*domain.User); ok {
			return user
		}
	}
	return nil
}
