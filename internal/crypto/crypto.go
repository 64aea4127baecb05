package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// keyLen is the AES-256 key size in bytes.
const keyLen = 32

// ErrCiphertextTooShort is returned when a stored value is shorter than
// the nonce and cannot have been produced by Encrypt.
var ErrCiphertextTooShort = errors.New("ciphertext shorter than nonce")

// Service encrypts and decrypts stored credential strings. The snapshot
// layer runs every access and refresh token through it before the token
// touches disk.
type Service interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NoopService stores credentials as-is, for development setups without a
// configured key.
type NoopService struct{}

func (NoopService) Encrypt(plaintext string) (string, error)  { return plaintext, nil }
func (NoopService) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

// TokenCipher is the production Service: AES-256-GCM with a fresh random
// nonce per token, stored hex-encoded as nonce || ciphertext || tag. The
// same token therefore never produces the same stored value twice.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher builds a cipher from a 64-character hex key.
func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != keyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &TokenCipher{aead: aead}, nil
}

func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

func (c *TokenCipher) Decrypt(ciphertext string) (string, error) {
	sealed, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", ErrCiphertextTooShort
	}

	nonce, body := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return string(plain), nil
}
