package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoToken      = errors.New("no token provided")
)

// Claims is the access-token payload: the user record minus the password.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Premium  bool   `json:"premium"`
	jwt.RegisteredClaims
}

// ResetClaims is the payload of a password-reset token.
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens. Secrets are injected at construction,
// never read from source constants.
type Manager struct {
	secret      []byte
	resetSecret []byte
	ttl         time.Duration
}

func NewManager(secret, resetSecret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), resetSecret: []byte(resetSecret), ttl: ttl}
}

// Issue creates a signed access token for the given user.
func (m *Manager) Issue(userID, username, email string, premium bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Premium:  premium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies an access token and returns its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueReset creates a password-reset token valid for one hour.
func (m *Manager) IssueReset(email string) (string, error) {
	claims := &ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.resetSecret)
}

// ParseReset verifies a reset token and returns the email it was issued for.
func (m *Manager) ParseReset(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(*jwt.Token) (interface{}, error) {
		return m.resetSecret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
