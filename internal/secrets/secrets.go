// Package secrets encrypts values at rest using fernet tokens. It is used
// for credentials stored in the system_setting table, such as the Vision
// OCR API key.
package secrets

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// Encryptor encrypts and decrypts strings with a fixed fernet key.
type Encryptor struct {
	keys []*fernet.Key
}

// NewEncryptor creates an Encryptor from a base64-encoded fernet key.
func NewEncryptor(key string) (*Encryptor, error) {
	if key == "" {
		return nil, errors.New("fernet key is empty")
	}

	k, err := fernet.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}

	return &Encryptor{keys: []*fernet.Key{k}}, nil
}

// Encrypt returns the fernet token for the given plaintext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire; the
// stored credentials are rotated by overwriting, not by TTL.
func (e *Encryptor) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, e.keys)
	if msg == nil {
		return "", errors.New("failed to verify encrypted value")
	}
	return string(msg), nil
}
