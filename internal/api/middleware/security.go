// Package middleware provides HTTP middleware components.
package middleware

import "net/http"

// SecurityConfig 定义安全响应头配置。
type SecurityConfig struct {
	// HTTPS controls whether Strict-Transport-Security is emitted.
	HTTPS bool
	// AllowedOrigin is reflected into Access-Control-Allow-Origin.
	AllowedOrigin string
}

// csp keeps same-origin defaults with inline scripts/styles allowed, plus the
// WebSocket and blob: sources a WebRTC page needs.
const csp = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"connect-src 'self' wss: ws:; " +
	"media-src 'self' blob:; " +
	"img-src 'self' data: blob:; " +
	"font-src 'self'; " +
	"object-src 'none'; " +
	"base-uri 'self'"

// SecurityHeaders attaches the fixed security-header set to every response,
// error responses included. Headers are set before the handler runs so no
// write path can skip them.
func SecurityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(self), microphone=(self), geolocation=()")
			h.Set("Content-Security-Policy", csp)
			if cfg.HTTPS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
