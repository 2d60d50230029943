package cert

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Material 保存服务启动时确定的证书与私钥。
//
// Temporary marks material the server generated itself; only that material is
// deleted again on shutdown. Caller-supplied files are never touched.
type Material struct {
	CertPEM   []byte
	KeyPEM    []byte
	CertFile  string
	KeyFile   string
	Temporary bool

	// dir is the private temp directory holding generated PEM files.
	dir string

	leafOnce sync.Once
	leaf     *x509.Certificate
	leafErr  error

	cleanupOnce sync.Once
	cleanupErr  error
}

// Leaf parses and caches the first certificate in CertPEM.
func (m *Material) Leaf() (*x509.Certificate, error) {
	m.leafOnce.Do(func() {
		block, _ := pem.Decode(m.CertPEM)
		if block == nil || block.Type != "CERTIFICATE" {
			m.leafErr = errors.New("cert: no certificate block in PEM data")
			return
		}
		m.leaf, m.leafErr = x509.ParseCertificate(block.Bytes)
	})
	return m.leaf, m.leafErr
}

// Cleanup removes generated certificate files and their containing temp
// directory. It runs at most once and is a no-op for caller-supplied
// material, so it is safe to defer on every shutdown path.
func (m *Material) Cleanup() error {
	m.cleanupOnce.Do(func() {
		if !m.Temporary || m.dir == "" {
			return
		}
		if err := os.RemoveAll(m.dir); err != nil {
			m.cleanupErr = fmt.Errorf("remove certificate dir: %w", err)
		}
	})
	return m.cleanupErr
}
