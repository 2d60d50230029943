package cert

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generate(t *testing.T, host string) *Material {
	t.Helper()
	m, err := NewProvider(discardLogger()).Obtain(context.Background(), Request{Host: host})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Cleanup() })
	return m
}

func TestGenerateSelfSignedRoundTrip(t *testing.T) {
	m := generate(t, "devbox.local")

	require.True(t, m.Temporary)
	_, err := os.Stat(m.CertFile)
	require.NoError(t, err)
	_, err = os.Stat(m.KeyFile)
	require.NoError(t, err)

	leaf, err := m.Leaf()
	require.NoError(t, err)

	assert.Equal(t, "devbox.local", leaf.Subject.CommonName)
	assert.Contains(t, leaf.DNSNames, "devbox.local")
	assert.Contains(t, leaf.DNSNames, "localhost")

	loopback := false
	for _, ip := range leaf.IPAddresses {
		if ip.Equal(net.ParseIP("127.0.0.1")) {
			loopback = true
		}
	}
	assert.True(t, loopback, "127.0.0.1 missing from SANs")

	window := leaf.NotAfter.Sub(leaf.NotBefore)
	assert.InDelta(t, (365 * 24 * time.Hour).Hours(), window.Hours(), 1)

	assert.Contains(t, leaf.ExtKeyUsage, x509.ExtKeyUsageServerAuth)
	assert.NotZero(t, leaf.KeyUsage&x509.KeyUsageDigitalSignature)
	assert.NotZero(t, leaf.KeyUsage&x509.KeyUsageKeyEncipherment)

	_, err = tls.X509KeyPair(m.CertPEM, m.KeyPEM)
	require.NoError(t, err)
}

func TestCleanupRemovesTemporaryDir(t *testing.T) {
	m := generate(t, "localhost")
	dir := filepath.Dir(m.CertFile)

	require.NoError(t, m.Cleanup())
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "temp dir should be gone")

	// Cleanup is idempotent.
	require.NoError(t, m.Cleanup())
}

func TestLoadedMaterialSurvivesCleanup(t *testing.T) {
	generated := generate(t, "localhost")

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, generated.CertPEM, 0o644))
	require.NoError(t, os.WriteFile(keyFile, generated.KeyPEM, 0o600))

	loaded, err := NewProvider(discardLogger()).Obtain(context.Background(), Request{
		CertFile: certFile,
		KeyFile:  keyFile,
	})
	require.NoError(t, err)

	assert.False(t, loaded.Temporary)
	require.NoError(t, loaded.Cleanup())

	_, err = os.Stat(certFile)
	assert.NoError(t, err, "caller-supplied cert must not be deleted")
	_, err = os.Stat(keyFile)
	assert.NoError(t, err, "caller-supplied key must not be deleted")
}

func TestObtainMissingKeyFile(t *testing.T) {
	generated := generate(t, "localhost")

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	require.NoError(t, os.WriteFile(certFile, generated.CertPEM, 0o644))

	_, err := NewProvider(discardLogger()).Obtain(context.Background(), Request{
		CertFile: certFile,
		KeyFile:  filepath.Join(dir, "missing.pem"),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestObtainRejectsMismatchedPair(t *testing.T) {
	a := generate(t, "localhost")
	b := generate(t, "localhost")

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, a.CertPEM, 0o644))
	require.NoError(t, os.WriteFile(keyFile, b.KeyPEM, 0o600))

	_, err := NewProvider(discardLogger()).Obtain(context.Background(), Request{
		CertFile: certFile,
		KeyFile:  keyFile,
	})
	require.Error(t, err)
}
