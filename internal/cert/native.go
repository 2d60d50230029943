package cert

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const rsaBits = 2048

// nativeSource generates a self-signed certificate with crypto/x509.
type nativeSource struct{}

func (nativeSource) name() string { return "native" }

func (nativeSource) obtain(_ context.Context, req Request) (*Material, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   req.Host,
			Organization: []string{"devserve"},
		},
		NotBefore:             now,
		NotAfter:              now.Add(req.Validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	for _, host := range sanHosts(req.Host) {
		if ip := net.ParseIP(host); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, host)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	return writeMaterial(certPEM, keyPEM)
}

// sanHosts lists the names the certificate must cover: the bind host, the
// loopback names, and best-effort the machine's network address.
func sanHosts(host string) []string {
	hosts := []string{host}
	for _, extra := range []string{"localhost", "127.0.0.1", LocalIP()} {
		if extra != "" && extra != host {
			hosts = append(hosts, extra)
		}
	}
	return hosts
}

// writeMaterial persists a generated keypair into a fresh private temp
// directory and wraps it as temporary material.
func writeMaterial(certPEM, keyPEM []byte) (*Material, error) {
	dir, err := os.MkdirTemp("", "devserve-cert-")
	if err != nil {
		return nil, fmt.Errorf("create cert dir: %w", err)
	}

	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")

	if err := os.WriteFile(certFile, certPEM, 0o644); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write cert: %w", err)
	}
	if err := os.WriteFile(keyFile, keyPEM, 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write key: %w", err)
	}

	return &Material{
		CertPEM:   certPEM,
		KeyPEM:    keyPEM,
		CertFile:  certFile,
		KeyFile:   keyFile,
		Temporary: true,
		dir:       dir,
	}, nil
}
