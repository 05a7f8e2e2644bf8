package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rep-score-portal/internal/config"
)

// Context keys set by AuthMiddleware.
const (
	UsernameKey    = "username"
	DisplayNameKey = "display_name"
	IsAdminKey     = "is_admin"
)

// AuthMiddleware gates every portal route behind the externally issued
// session token. The portal only consumes the resulting
// (username, display-name, is-admin) triple; issuing and refreshing
// tokens is someone else's job.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			message := "invalid token"
			if err != nil && strings.Contains(err.Error(), "token is expired") {
				message = "token has expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": message})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		username, ok := claims["sub"].(string)
		if !ok || username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing username in token"})
			c.Abort()
			return
		}

		displayName := username
		if name, ok := claims["name"].(string); ok && name != "" {
			displayName = name
		}

		c.Set(UsernameKey, username)
		c.Set(DisplayNameKey, displayName)
		c.Set(IsAdminKey, cfg.IsAdmin(username))
		c.Next()
	}
}

// Username returns the authenticated username from the request context.
func Username(c *gin.Context) string {
	if value, exists := c.Get(UsernameKey); exists {
		if username, ok := value.(string); ok {
			return username
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated user is on the admin list.
func IsAdmin(c *gin.Context) bool {
	if value, exists := c.Get(IsAdminKey); exists {
		if isAdmin, ok := value.(bool); ok {
			return isAdmin
		}
	}
	return false
}
