// Package cert provisions the TLS keypair the server terminates with:
// caller-supplied PEM files when configured, otherwise a freshly generated
// self-signed certificate written to a private temp directory.
package cert

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

var (
	// ErrNotFound 表示调用方提供的证书或私钥文件不存在。
	ErrNotFound = errors.New("certificate file not found")
	// ErrGenerationFailed 表示所有证书生成策略都失败了。
	ErrGenerationFailed = errors.New("certificate generation failed")
)

// Request describes the certificate the provider should produce.
type Request struct {
	// Host becomes the certificate CommonName and first SAN.
	Host string
	// CertFile/KeyFile select load-from-disk instead of generation.
	CertFile string
	KeyFile  string
	// Validity of generated certificates; defaults to one year.
	Validity time.Duration
}

// source is one fallible way of producing certificate material. Sources are
// tried in order and the first success wins.
type source interface {
	name() string
	obtain(ctx context.Context, req Request) (*Material, error)
}

// Provider resolves certificate material from a pipeline of sources.
type Provider struct {
	logger  *slog.Logger
	sources []source
}

// NewProvider builds the default pipeline: native crypto/x509 generation,
// then the openssl CLI as a fallback.
func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		logger:  logger,
		sources: []source{nativeSource{}, opensslSource{}},
	}
}

// Obtain returns ready-to-serve certificate material or fails fast. Loaded
// material is never temporary; generated material always is.
func (p *Provider) Obtain(ctx context.Context, req Request) (*Material, error) {
	if req.CertFile != "" || req.KeyFile != "" {
		return loadKeyPair(req.CertFile, req.KeyFile)
	}

	if req.Host == "" {
		req.Host = "localhost"
	}
	if req.Validity <= 0 {
		req.Validity = 365 * 24 * time.Hour
	}

	var failures []error
	for _, src := range p.sources {
		material, err := src.obtain(ctx, req)
		if err != nil {
			p.logger.Warn("certificate source failed", "source", src.name(), "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", src.name(), err))
			continue
		}
		p.logger.Info("self-signed certificate ready",
			"source", src.name(), "host", req.Host, "dir", material.dir)
		return material, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, errors.Join(failures...))
}

func loadKeyPair(certFile, keyFile string) (*Material, error) {
	if certFile == "" || keyFile == "" {
		return nil, errors.New("cert: cert and key files must be provided together")
	}
	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, certFile)
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, keyFile)
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		return nil, fmt.Errorf("cert: invalid key pair: %w", err)
	}
	return &Material{
		CertPEM:   certPEM,
		KeyPEM:    keyPEM,
		CertFile:  certFile,
		KeyFile:   keyFile,
		Temporary: false,
	}, nil
}
