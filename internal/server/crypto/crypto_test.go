package crypto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
)

func argonParams() crypt.Argon2Params {
	return crypt.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// Хэширование и успешная проверка
func TestHashers_HashAndVerify(t *testing.T) {
	hashers := map[string]crypt.PasswordHasher{
		"bcrypt":   crypt.BcryptHasher{Cost: 4},
		"argon2id": crypt.Argon2Hasher{Params: argonParams()},
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("super-secret-password")
			require.NoError(t, err)
			require.NotContains(t, hash, "super-secret-password")

			ok, err := crypt.VerifyPassword("super-secret-password", hash)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = crypt.VerifyPassword("wrong-password", hash)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

// Одинаковый пароль даёт разные хэши из-за соли
func TestHashers_Salted(t *testing.T) {
	h := crypt.BcryptHasher{Cost: 4}
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestBcryptHasher_DefaultCostIs10(t *testing.T) {
	hash, err := crypt.BcryptHasher{}.Hash("pw")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$10$"), hash)
}

func TestHashers_EmptyPassword(t *testing.T) {
	_, err := crypt.BcryptHasher{Cost: 4}.Hash("  ")
	require.ErrorIs(t, err, crypt.ErrEmptyPassword)

	_, err = crypt.Argon2Hasher{Params: argonParams()}.Hash("")
	require.ErrorIs(t, err, crypt.ErrEmptyPassword)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := crypt.VerifyPassword("pw", "argon2id$broken")
	require.Error(t, err)

	_, err = crypt.VerifyPassword("pw", "not-a-hash")
	require.Error(t, err)
}

func TestNewSessionToken_UniqueAndURLSafe(t *testing.T) {
	a, err := crypt.NewSessionToken()
	require.NoError(t, err)
	b, err := crypt.NewSessionToken()
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Len(t, a, 43)
	require.NotContains(t, a, "+")
	require.NotContains(t, a, "/")
}

func TestHashToken_Deterministic(t *testing.T) {
	require.Equal(t, crypt.HashToken("abc"), crypt.HashToken("abc"))
	require.NotEqual(t, crypt.HashToken("abc"), crypt.HashToken("abd"))
	require.Len(t, crypt.HashToken("abc"), 64)
}

func TestCookieSigner_RoundTrip(t *testing.T) {
	s := crypt.NewCookieSigner("supersecretkeysupersecretkey123456")

	v, err := s.Sign("session-token", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tok, err := s.Parse(v)
	require.NoError(t, err)
	require.Equal(t, "session-token", tok)
}

func TestCookieSigner_Rejects(t *testing.T) {
	s := crypt.NewCookieSigner("supersecretkeysupersecretkey123456")
	other := crypt.NewCookieSigner("anothersecretanothersecret12345678")

	expired, err := s.Sign("t", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	foreign, err := other.Sign("t", time.Now().Add(time.Hour))
	require.NoError(t, err)

	for name, v := range map[string]string{
		"empty":   "",
		"garbage": "not.a.jwt",
		"expired": expired,
		"foreign": foreign,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Parse(v)
			require.ErrorIs(t, err, crypt.ErrInvalidCookie)
		})
	}
}
