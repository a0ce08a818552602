package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

const issuer = "storefront"

// Codec signs the session id carried by the browser cookie, so a visitor can
// neither forge nor guess another visitor's session.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{key: secret, ttl: ttl, now: time.Now}
}

func (c *Codec) Encode(sessionID string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}
	if claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}
