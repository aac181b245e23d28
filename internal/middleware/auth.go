package middleware

import (
	"net/http"
	"strings"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/response"
	"github.com/campusworks/rollbook-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyClaims is the Gin context key for session claims.
	ContextKeyClaims = "claims"

	// SessionCookieName is the cookie carrying the session token for
	// both roles.
	SessionCookieName = "token"
)

// RequireAdmin validates an admin session token from the cookie.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return requireRole(authService, service.RoleAdmin)
}

// RequireFaculty validates a faculty session token from the cookie.
func RequireFaculty(authService *service.AuthService) gin.HandlerFunc {
	return requireRole(authService, service.RoleFaculty)
}

func requireRole(authService *service.AuthService, role service.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(role, tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the session claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// SetSessionCookie writes the session cookie with one uniform policy
// for both roles: HTTP-only, SameSite Lax, Secure from config.
func SetSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token,
		int(cfg.SessionTTL.Seconds()), "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// extractToken reads the session cookie, falling back to an
// Authorization bearer header for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return ""
}
