package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"rep-score-portal/internal/config"
	"rep-score-portal/internal/middleware"
)

func testRouter(cfg *config.Config, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := testRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := testRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}
	router := testRouter(cfg, okHandler)

	tokenString := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:  "test-secret-key-for-jwt-signing-must-be-long-enough",
		AdminUsers: []string{"admin-user"},
	}

	tokenString := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  "alice",
		"name": "Alice Example",
	})

	router := testRouter(cfg, func(c *gin.Context) {
		assert.Equal(t, "alice", middleware.Username(c))
		displayName, exists := c.Get(middleware.DisplayNameKey)
		assert.True(t, exists)
		assert.Equal(t, "Alice Example", displayName)
		assert.False(t, middleware.IsAdmin(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_AdminFlag(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:  "test-secret-key-for-jwt-signing-must-be-long-enough",
		AdminUsers: []string{"admin-user"},
	}

	tokenString := signToken(t, cfg.JWTSecret, jwt.MapClaims{"sub": "admin-user"})

	router := testRouter(cfg, func(c *gin.Context) {
		assert.True(t, middleware.IsAdmin(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
