package middlewares

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offwork.app/offwork/security"
)

func newProtectedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/api")
	protected.Use(Authentication(secret))
	protected.GET("/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "hello"})
	})
	return r
}

func TestAuthentication(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	base64Secret := base64.StdEncoding.EncodeToString(secret)
	r := newProtectedRouter(secret)

	token, err := security.CreateIdentityToken(
		&security.DeviceIdentity{DeviceID: "test-device", UserName: "tester"},
		base64Secret,
		3600,
	)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authorize  func(req *http.Request)
		wantStatus int
	}{
		{
			name:       "missing credentials",
			authorize:  func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer token",
			authorize: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "cookie",
			authorize: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "offwork.ApplicationCookie", Value: token})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "malformed header",
			authorize: func(req *http.Request) {
				req.Header.Set("Authorization", token)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			authorize: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer not.a.token")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
			tt.authorize(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
