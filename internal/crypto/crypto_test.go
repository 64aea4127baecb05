package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *TokenCipher {
	t.Helper()

	c, err := NewTokenCipher(strings.Repeat("ab", keyLen))
	require.NoError(t, err)
	return c
}

func TestNewTokenCipher_RejectsBadKeys(t *testing.T) {
	tests := []struct {
		name   string
		hexKey string
	}{
		{"not hex", strings.Repeat("zz", keyLen)},
		{"too short", "abcdef"},
		{"too long", strings.Repeat("ab", keyLen+1)},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenCipher(tt.hexKey)
			assert.Error(t, err)
		})
	}
}

func TestTokenCipher_Roundtrip(t *testing.T) {
	c := newTestCipher(t)

	sealed, err := c.Encrypt("discord-access-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "discord-access-token")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "discord-access-token", plain)
}

func TestTokenCipher_FreshNoncePerToken(t *testing.T) {
	c := newTestCipher(t)

	first, err := c.Encrypt("same-token")
	require.NoError(t, err)
	second, err := c.Encrypt("same-token")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCipher_WrongKeyFails(t *testing.T) {
	sealed, err := newTestCipher(t).Encrypt("refresh-token")
	require.NoError(t, err)

	other, err := NewTokenCipher(strings.Repeat("cd", keyLen))
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.Error(t, err)
}

func TestTokenCipher_TamperDetected(t *testing.T) {
	c := newTestCipher(t)

	sealed, err := c.Encrypt("refresh-token")
	require.NoError(t, err)

	// Flip one hex digit of the tag at the end.
	tampered := sealed[:len(sealed)-1]
	if strings.HasSuffix(sealed, "0") {
		tampered += "1"
	} else {
		tampered += "0"
	}

	_, err = c.Decrypt(tampered)
	assert.Error(t, err)
}

func TestTokenCipher_RejectsMalformedCiphertext(t *testing.T) {
	c := newTestCipher(t)

	_, err := c.Decrypt("not hex at all")
	assert.Error(t, err)

	_, err = c.Decrypt("abcd")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNoopService_Passthrough(t *testing.T) {
	var svc Service = NoopService{}

	sealed, err := svc.Encrypt("plain-token")
	require.NoError(t, err)
	assert.Equal(t, "plain-token", sealed)

	plain, err := svc.Decrypt("plain-token")
	require.NoError(t, err)
	assert.Equal(t, "plain-token", plain)
}
