package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"esperanca/internal/config"
	"esperanca/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

// DonationService serves the PIX payment QR code. The image is generated on
// first request and cached on disk; the filename is derived from the payload
// so a configuration change produces a fresh image.
type DonationService struct {
	root    string
	payload string
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewDonationService returns a new DonationService.
func NewDonationService(cfg *config.Config, logger *slog.Logger) *DonationService {
	return &DonationService{
		root:    cfg.UploadRoot,
		payload: cfg.PixPayload,
		logger:  logger,
	}
}

// QRCodePath returns the root-relative path of the PIX QR image, generating
// it if needed. A missing PIX configuration is reported as not found.
func (s *DonationService) QRCodePath(ctx context.Context) (string, error) {
	if s.payload == "" {
		return "", models.NewNotFoundError("QR code PIX", "pix")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := sha256.Sum256([]byte(s.payload))
	name := "pix_" + hex.EncodeToString(sum[:8]) + ".png"
	rel := filepath.ToSlash(filepath.Join(config.QRCodeFolder, name))
	abs := filepath.Join(s.root, config.QRCodeFolder, name)

	if _, err := os.Stat(abs); err == nil {
		return rel, nil
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := qrcode.WriteFile(s.payload, qrcode.Medium, qrImageSize, abs); err != nil {
		return "", models.NewInternalError(err)
	}

	s.logger.InfoContext(ctx, "pix qr code generated", "file", rel)
	return rel, nil
}
