package bootstrap

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/devserve/internal/cert"
)

func TestVerifyAssets(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"index.html", "app.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	assert.NoError(t, VerifyAssets(root, []string{"index.html", "app.js"}))

	err := VerifyAssets(root, []string{"index.html", "app.js", "styles.css", "logo.png"})
	require.ErrorIs(t, err, ErrMissingAssets)
	// All missing names are reported at once.
	assert.Contains(t, err.Error(), "styles.css")
	assert.Contains(t, err.Error(), "logo.png")
	assert.NotContains(t, err.Error(), "index.html")
}

func TestNewTLSConfigPolicy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	material, err := cert.NewProvider(logger).Obtain(context.Background(), cert.Request{Host: "localhost"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = material.Cleanup() })

	conf, err := NewTLSConfig(material)
	require.NoError(t, err)

	assert.EqualValues(t, tls.VersionTLS12, conf.MinVersion)
	assert.Equal(t, []string{"http/1.1"}, conf.NextProtos)
	assert.Len(t, conf.Certificates, 1)
	assert.NotEmpty(t, conf.CipherSuites)

	// Only AEAD ECDHE suites make the cut.
	for _, id := range conf.CipherSuites {
		for _, weak := range []uint16{
			tls.TLS_RSA_WITH_RC4_128_SHA,
			tls.TLS_RSA_WITH_3DES_EDE_CBC_SHA,
			tls.TLS_RSA_WITH_AES_128_CBC_SHA,
			tls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
		} {
			assert.NotEqual(t, weak, id)
		}
	}
}

func TestListenAddressInUse(t *testing.T) {
	first, err := Listen("127.0.0.1:0", &tls.Config{})
	require.NoError(t, err)
	defer first.Close()

	_, err = Listen(first.Addr().String(), &tls.Config{})
	require.ErrorIs(t, err, ErrAddressInUse)
	assert.Contains(t, err.Error(), "--port")
}
