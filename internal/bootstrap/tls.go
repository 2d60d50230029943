package bootstrap

import (
	"crypto/tls"
	"fmt"

	"github.com/creamcroissant/devserve/internal/cert"
)

// NewTLSConfig builds the server TLS policy around the provisioned material:
// TLS 1.2 floor, AEAD-only curated suites, HTTP/1.1 only.
func NewTLSConfig(material *cert.Material) (*tls.Config, error) {
	pair, err := tls.X509KeyPair(material.CertPEM, material.KeyPEM)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
		// ECDHE with AES-GCM or ChaCha20 only; TLS 1.3 suites are not
		// configurable and are already this strict.
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		},
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256},
		NextProtos:       []string{"http/1.1"},
	}, nil
}
