package crypto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie — значение cookie не прошло проверку подписи или срока.
var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieIssuer — значение iss в подписанной cookie сессии.
const CookieIssuer = "bookcorner"

// CookieSigner подписывает токен сессии для передачи в cookie.
//
// Значение cookie — JWT (HS256): sub = токен сессии, exp = конец сессии.
// Подпись не заменяет серверную сессию: после проверки токен всё равно
// ищется в хранилище сессий.
type CookieSigner struct {
	key []byte
}

// NewCookieSigner создаёт подписчик с секретом auth.sessions.secret.
func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{key: []byte(secret)}
}

// Sign возвращает значение cookie для токена сессии.
func (s *CookieSigner) Sign(sessionToken string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    CookieIssuer,
		Subject:   sessionToken,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	v, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign cookie: %w", err)
	}
	return v, nil
}

// Parse проверяет подпись и срок cookie и возвращает токен сессии.
func (s *CookieSigner) Parse(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrInvalidCookie
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(CookieIssuer),
		jwt.WithExpirationRequired(),
	)
	if _, err := parser.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}

	token := strings.TrimSpace(claims.Subject)
	if token == "" {
		return "", ErrInvalidCookie
	}
	return token, nil
}
