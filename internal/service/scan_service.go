package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Norn-cloud/tag-scanner/internal/apperrors"
	"github.com/Norn-cloud/tag-scanner/internal/model"
	"github.com/Norn-cloud/tag-scanner/internal/repository"
	"github.com/Norn-cloud/tag-scanner/internal/secrets"
	"github.com/Norn-cloud/tag-scanner/internal/vision"
)

// visionKeySetting is the system_setting key holding the encrypted Google
// Vision API key.
const visionKeySetting = "vision_api_key"

// ScanService turns a photographed jewelry tag into structured fields: OCR
// via the Vision client, then regex extraction of weight, karat, SKU and
// tag cost.
type ScanService struct {
	client      vision.Client
	settingRepo *repository.SettingRepository
	encryptor   *secrets.Encryptor
}

// NewScanService creates a new ScanService with the provided dependencies.
// The encryptor may be nil when no fernet key is configured; storing and
// loading the Vision key is then unavailable.
func NewScanService(client vision.Client, settingRepo *repository.SettingRepository, encryptor *secrets.Encryptor) *ScanService {
	return &ScanService{
		client:      client,
		settingRepo: settingRepo,
		encryptor:   encryptor,
	}
}

// ScanTag runs OCR on the image and parses the recognized text. An image the
// OCR cannot read is not an error: the result simply carries empty fields
// and the cashier types the tag in by hand.
func (s *ScanService) ScanTag(ctx context.Context, imageBase64 string) (model.ScanResult, error) {
	text, err := s.client.DetectText(ctx, imageBase64)
	if err != nil {
		return model.ScanResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToScanTag, err)
	}

	return model.ScanResult{
		RawText: text,
		Parsed:  vision.ParseTagText(text),
	}, nil
}

// StoreAPIKey encrypts the Vision API key and persists it as a system
// setting, so the key survives restarts without living in the environment.
func (s *ScanService) StoreAPIKey(key string) error {
	if s.encryptor == nil {
		return fmt.Errorf("secret storage is not configured")
	}

	encrypted, err := s.encryptor.Encrypt(key)
	if err != nil {
		return fmt.Errorf("failed to encrypt vision key: %w", err)
	}

	return s.settingRepo.Set(uuid.New().String(), visionKeySetting, encrypted)
}

// LoadAPIKey retrieves and decrypts the stored Vision API key. Returns
// apperrors.ErrSettingNotFound when no key has been stored.
func (s *ScanService) LoadAPIKey() (string, error) {
	if s.encryptor == nil {
		return "", fmt.Errorf("secret storage is not configured")
	}

	encrypted, err := s.settingRepo.Get(visionKeySetting)
	if err != nil {
		return "", err
	}

	key, err := s.encryptor.Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt vision key: %w", err)
	}
	return key, nil
}
