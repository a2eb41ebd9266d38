package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("token has no subject")
)

// Tokens validates and mints HS256 operator tokens. The subject claim
// carries the operator identity used for reply stamping.
type Tokens struct {
	secret []byte
}

// New creates a token helper with the given signing secret.
func New(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Parse validates an HS256 JWT and returns the operator id from the
// "sub" claim.
func (t *Tokens) Parse(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}

// Sign mints a token for the given operator id, valid for ttl.
func (t *Tokens) Sign(operatorID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": operatorID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
