package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fastParams = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestArgon2RoundTrip(t *testing.T) {
	hash, err := HashPasswordWithParams("Abcd1234", fastParams)
	require.NoError(t, err)
	assert.Contains(t, string(hash), "$argon2id$v=19$m=8192,t=1,p=1$")

	ok, err := VerifyPassword("Abcd1234", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("abcd1234", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2SaltsDiffer(t *testing.T) {
	a, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	b, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyBcryptLegacyHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcd1234"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword("Abcd1234", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsUnknownFormat(t *testing.T) {
	ok, err := VerifyPassword("Abcd1234", []byte("plaintext"))
	assert.ErrorIs(t, err, ErrUnsupportedHash)
	assert.False(t, ok)

	_, err = VerifyPassword("x", []byte("$argon2id$v=19$broken"))
	assert.Error(t, err)
}

func TestNewSessionTokenIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		tok := NewSessionToken()
		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}
