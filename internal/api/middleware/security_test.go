package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func applySecurity(cfg SecurityConfig, status int) *httptest.ResponseRecorder {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSecurityHeadersFixedSet(t *testing.T) {
	w := applySecurity(SecurityConfig{HTTPS: true, AllowedOrigin: "*"}, http.StatusOK)

	h := w.Header()
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	assert.Equal(t, "camera=(self), microphone=(self), geolocation=()", h.Get("Permissions-Policy"))
	assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'self'")
	assert.Contains(t, h.Get("Content-Security-Policy"), "object-src 'none'")
	assert.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
}

func TestSecurityHeadersOnErrorResponses(t *testing.T) {
	w := applySecurity(SecurityConfig{HTTPS: true, AllowedOrigin: "*"}, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, w.Header().Get("X-Frame-Options"))
}

func TestHSTSRequiresTLS(t *testing.T) {
	w := applySecurity(SecurityConfig{HTTPS: false, AllowedOrigin: "*"}, http.StatusOK)
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestConfigurableOrigin(t *testing.T) {
	w := applySecurity(SecurityConfig{HTTPS: true, AllowedOrigin: "https://app.example"}, http.StatusOK)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	// Empty falls back to the development wildcard.
	w = applySecurity(SecurityConfig{HTTPS: true}, http.StatusOK)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
