// Package auth issues and verifies the bearer tokens carried by admin
// requests. Tokens are HS256-signed JWTs holding the admin's id, email
// and role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// trusted: bad signature, wrong algorithm, expired, or malformed.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = 24 * time.Hour

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokens(secret string, ttl time.Duration, clk clock.Clock) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, clock: clk}
}

// Issue signs a token for the given admin identity.
func (t *Tokens) Issue(id domain.AdminIdentity) (string, error) {
	now := t.clock.Now()
	c := claims{
		Email: id.Email,
		Role:  string(id.Level),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning the admin
// identity it carries.
func (t *Tokens) Verify(tokenString string) (domain.AdminIdentity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c,
		func(token *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return domain.AdminIdentity{}, ErrInvalidToken
	}
	if !token.Valid {
		return domain.AdminIdentity{}, ErrInvalidToken
	}

	level := domain.AdminLevel(c.Role)
	if level != domain.AdminLevelAdmin && level != domain.AdminLevelSuperadmin {
		return domain.AdminIdentity{}, ErrInvalidToken
	}

	return domain.AdminIdentity{
		ID:    c.Subject,
		Email: c.Email,
		Level: level,
	}, nil
}
