package cert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// opensslSource shells out to the openssl CLI with parameters equivalent to
// the native source. It only runs when native generation failed.
type opensslSource struct{}

func (opensslSource) name() string { return "openssl" }

func (opensslSource) obtain(ctx context.Context, req Request) (*Material, error) {
	if _, err := exec.LookPath("openssl"); err != nil {
		return nil, fmt.Errorf("openssl not available: %w", err)
	}

	dir, err := os.MkdirTemp("", "devserve-cert-")
	if err != nil {
		return nil, fmt.Errorf("create cert dir: %w", err)
	}

	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	days := strconv.Itoa(int(req.Validity.Hours() / 24))

	cmds := [][]string{
		{"openssl", "genrsa", "-out", keyFile, strconv.Itoa(rsaBits)},
		{"openssl", "req", "-new", "-x509", "-key", keyFile, "-out", certFile,
			"-days", days, "-subj", "/O=devserve/CN=" + req.Host},
	}
	for _, argv := range cmds {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		if out, err := cmd.CombinedOutput(); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("%s: %w: %s", argv[1], err, out)
		}
	}

	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("read generated cert: %w", err)
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("read generated key: %w", err)
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
