package encryption_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectchat/chat-service/internal/pkg/encryption"
)

const rawKey = "0123456789abcdef0123456789abcdef"

func TestAESEncryptorRoundTrip(t *testing.T) {
	// Arrange
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)

	// Act
	ciphertext, err := enc.EncryptString("sk-very-secret")
	require.NoError(t, err)
	plaintext, err := enc.DecryptString(ciphertext)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sk-very-secret", plaintext)
	assert.NotEqual(t, "sk-very-secret", ciphertext)
}

func TestAESEncryptorAcceptsBase64Key(t *testing.T) {
	// Arrange
	encodedKey := base64.StdEncoding.EncodeToString([]byte(rawKey))

	// Act
	enc, err := encryption.NewAESEncryptor(encodedKey)

	// Assert
	require.NoError(t, err)

	ciphertext, err := enc.EncryptString("value")
	require.NoError(t, err)
	plaintext, err := enc.DecryptString(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "value", plaintext)
}

func TestAESEncryptorRejectsShortKey(t *testing.T) {
	_, err := encryption.NewAESEncryptor("too short")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestAESEncryptorNonDeterministicCiphertext(t *testing.T) {
	// Arrange
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)

	// Act
	first, err := enc.EncryptString("same input")
	require.NoError(t, err)
	second, err := enc.EncryptString("same input")
	require.NoError(t, err)

	// Assert: a fresh nonce per call
	assert.NotEqual(t, first, second)
}

func TestAESEncryptorRejectsTamperedCiphertext(t *testing.T) {
	// Arrange
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)
	ciphertext, err := enc.EncryptString("secret")
	require.NoError(t, err)

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(data)

	// Act
	_, err = enc.DecryptString(tampered)

	// Assert
	assert.Error(t, err)
}

func TestAESEncryptorRejectsGarbageInput(t *testing.T) {
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)

	_, err = enc.DecryptString("not base64 at all!!!")
	assert.Error(t, err)

	_, err = enc.DecryptString(base64.StdEncoding.EncodeToString([]byte("x")))
	assert.Error(t, err)
}

func TestNoOpEncryptorPassthrough(t *testing.T) {
	enc := encryption.NewNoOpEncryptor()

	out, err := enc.EncryptString("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	out, err = enc.DecryptString("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
}
