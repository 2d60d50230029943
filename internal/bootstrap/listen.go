package bootstrap

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrAddressInUse 表示端口已被占用。
var ErrAddressInUse = errors.New("address already in use")

// Listen binds the TCP socket and wraps it for TLS. Plaintext HTTP is never
// served; the raw listener is not exposed.
func Listen(addr string, tlsConf *tls.Config) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s (pick a different port with --port)", ErrAddressInUse, addr)
		}
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	return tls.NewListener(ln, tlsConf), nil
}
