package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/creamcroissant/devserve/internal/cert"
)

// CertExpiryJob periodically checks the serving certificate's validity
// window. It matters mostly for caller-supplied certificates; generated ones
// always start with a fresh year.
type CertExpiryJob struct {
	material   *cert.Material
	warnWithin time.Duration
	logger     *slog.Logger
}

// NewCertExpiryJob builds the job; warnWithin is how close to NotAfter the
// warning starts.
func NewCertExpiryJob(material *cert.Material, warnWithin time.Duration, logger *slog.Logger) *CertExpiryJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &CertExpiryJob{material: material, warnWithin: warnWithin, logger: logger}
}

func (j *CertExpiryJob) Name() string { return "cert-expiry" }

func (j *CertExpiryJob) Run(_ context.Context) error {
	leaf, err := j.material.Leaf()
	if err != nil {
		return err
	}

	remaining := time.Until(leaf.NotAfter)
	switch {
	case remaining <= 0:
		j.logger.Error("serving certificate has expired; browsers will refuse it",
			"not_after", leaf.NotAfter)
	case remaining < j.warnWithin:
		j.logger.Warn("serving certificate expires soon",
			"not_after", leaf.NotAfter, "remaining", remaining.Round(time.Hour))
	}
	return nil
}
