package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := "MySecretCookieKey!"
	plaintext := "eyJhbGciOiJIUzI1NiJ9.payload.signature"

	sealed, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, sealed)

	opened, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestEncryptProducesFreshCiphertext(t *testing.T) {
	// IV acak: dua kali enkripsi plaintext yang sama tidak boleh identik
	key := "key"
	a, err := Encrypt("same data", key)
	require.NoError(t, err)
	b, err := Encrypt("same data", key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptWithWrongKey(t *testing.T) {
	sealed, err := Encrypt("secret data", "key-one")
	require.NoError(t, err)

	opened, err := Decrypt(sealed, "key-two")
	if err == nil {
		assert.NotEqual(t, "secret data", opened)
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	_, err := Decrypt("%%%not-base64%%%", "key")
	assert.Error(t, err)

	_, err = Decrypt("c2hvcnQ=", "key") // valid base64, lebih pendek dari satu blok
	assert.Error(t, err)
}

func TestFixEncryptionKey(t *testing.T) {
	assert.Len(t, FixEncryptionKey("short"), 32)
	assert.Len(t, FixEncryptionKey("this key is much much longer than thirty two bytes"), 32)
	exact := "abcdefghijklmnopqrstuvwxyz123456"
	assert.Equal(t, exact, FixEncryptionKey(exact))
}
