package jwtinfra

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/incial/crm-api/internal/config"
	"github.com/incial/crm-api/internal/domain"
)

// minKeyLen is the minimum decoded secret length for HS256 (RFC 2104: key
// should be at least the hash output size).
const minKeyLen = 32

// Claims holds the JWT payload fields. Subject carries the user email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 JWTs with a symmetric key decoded once from
// a base64 secret. Immutable after construction; safe for concurrent use.
type Codec struct {
	key    []byte
	expiry time.Duration
}

// NewCodec decodes the configured base64 secret. A missing, undecodable, or
// too-short secret is a startup error — the caller must not serve requests.
func NewCodec(cfg *config.Config) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	key, err := base64.StdEncoding.DecodeString(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("decode JWT_SECRET: %w", err)
	}
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("JWT_SECRET decodes to %d bytes, need at least %d", len(key), minKeyLen)
	}
	return &Codec{key: key, expiry: config.TokenTTL}, nil
}

// Sign issues a token for the given subject carrying the role claim.
func (c *Codec) Sign(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Verify parses the token and checks its signature and registered claims
// (including expiry). Failures wrap domain.ErrInvalidToken.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrInvalidToken)
	}
	return claims, nil
}

// ExtractSubject returns the subject after signature verification.
func (c *Codec) ExtractSubject(tokenStr string) (string, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRole returns the role claim after signature verification.
func (c *Codec) ExtractRole(tokenStr string) (string, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// ExtractExpiry returns the expiry timestamp after signature verification.
func (c *Codec) ExtractExpiry(tokenStr string) (time.Time, error) {
	claims, err := c.Verify(tokenStr)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("missing exp claim: %w", domain.ErrInvalidToken)
	}
	return claims.ExpiresAt.Time, nil
}

// IsValid reports whether the token is well-formed, correctly signed, and
// unexpired. It never returns an error: any parse failure means false.
func (c *Codec) IsValid(tokenStr string) bool {
	exp, err := c.ExtractExpiry(tokenStr)
	if err != nil {
		return false
	}
	return exp.After(time.Now())
}
