package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuth(NewSharedSecretChecker(secret)))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		authHeader string
		expected   int
	}{
		{
			name:       "valid credential passes",
			secret:     "s3cret",
			authHeader: "Bearer s3cret",
			expected:   http.StatusOK,
		},
		{
			name:     "missing header is rejected",
			secret:   "s3cret",
			expected: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme is rejected",
			secret:     "s3cret",
			authHeader: "Basic s3cret",
			expected:   http.StatusUnauthorized,
		},
		{
			name:       "wrong credential is rejected",
			secret:     "s3cret",
			authHeader: "Bearer nope",
			expected:   http.StatusUnauthorized,
		},
		{
			name:       "empty configured secret rejects everything",
			secret:     "",
			authHeader: "Bearer ",
			expected:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(tt.secret)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
