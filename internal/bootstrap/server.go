// Package bootstrap assembles the listener-side infrastructure: server
// defaults, the TLS policy, socket binding and the startup asset check.
package bootstrap

import (
	"net/http"
	"time"
)

// NewHTTPServer constructs a baseline http.Server with conservative defaults.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}
}
