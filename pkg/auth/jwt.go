package auth

import (
	"errors"
	"time"

	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

// UserSession represents the user session data stored in JWT
type UserSession struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserCode string `json:"user_code"`
	Role     string `json:"type"`
}

// IsOwner reports whether the session belongs to the restaurant owner
func (u UserSession) IsOwner() bool {
	return u.Role == constants.RoleOwner
}

// IsStaff reports whether the session belongs to an owner or an employee
func (u UserSession) IsStaff() bool {
	return u.Role == constants.RoleOwner || u.Role == constants.RoleEmployee
}

// Claims represents JWT claims
type Claims struct {
	User UserSession `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with a shared HMAC secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. A non-positive ttl falls back to 24h.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTLHours * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken creates a JWT token for a user session
func (m *TokenManager) GenerateToken(session UserSession) (string, *Claims, error) {
	issuedAt := m.now()
	claims := &Claims{
		User: session,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        utils.GenerateID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken validates and parses a JWT token
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// DecodeToken decodes a token without validation (for extracting JTI)
func DecodeToken(tokenString string) (*Claims, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok {
		return claims, nil
	}

	return nil, errors.New("invalid token claims")
}
