// Package token mints and verifies the signed, time-limited tokens used by
// the password-reset flow. Tokens are stateless: the claims carry the user
// id and email, and the signature plus expiry are the whole credential.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was well-formed and correctly signed but
	// its validity window has elapsed.
	ErrExpired = errors.New("reset token expired")
	// ErrInvalid means the token was tampered with or malformed.
	ErrInvalid = errors.New("reset token invalid")
)

// ResetClaims is the payload carried by a password-reset token.
type ResetClaims struct {
	UserID uint64
	Email  string
}

// Manager signs and verifies reset tokens with a shared server secret.
type Manager struct {
	secret   []byte
	validity time.Duration
}

// NewManager creates a Manager. validity bounds how long a minted token
// verifies successfully.
func NewManager(secret string, validity time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Mint creates a signed token for the given user.
func (m *Manager) Mint(userID uint64, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.validity).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Expired and tampered tokens are distinguishable outcomes.
func (m *Manager) Verify(tokenString string) (*ResetClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}

	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return nil, ErrInvalid
	}
	email, _ := claims["email"].(string)

	return &ResetClaims{
		UserID: uint64(uid),
		Email:  email,
	}, nil
}
