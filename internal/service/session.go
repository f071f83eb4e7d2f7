package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued on login.
const CookieName = "session"

var ErrInvalidSession = errors.New("invalid session")

// Sessions issues and validates the signed session tokens that carry a
// user id and expiry. There is no server-side session state.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured session lifetime.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue returns a signed token bound to the user identity.
func (s *Sessions) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.ttl).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the token and returns the user id it was issued for.
func (s *Sessions) Parse(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidSession
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return 0, ErrInvalidSession
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return 0, ErrInvalidSession
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidSession
	}

	return int64(userID), nil
}
