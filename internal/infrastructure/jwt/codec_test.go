package jwtinfra

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/incial/crm-api/internal/config"
	"github.com/incial/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecret(seed byte) string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed + byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(&config.Config{JWTSecret: testSecret(1)})
	require.NoError(t, err)
	return c
}

func TestNewCodec_MissingSecret(t *testing.T) {
	_, err := NewCodec(&config.Config{})
	require.Error(t, err)
}

func TestNewCodec_MalformedBase64(t *testing.T) {
	_, err := NewCodec(&config.Config{JWTSecret: "not-base64!!!"})
	require.Error(t, err)
}

func TestNewCodec_ShortSecret(t *testing.T) {
	_, err := NewCodec(&config.Config{JWTSecret: base64.StdEncoding.EncodeToString([]byte("short"))})
	require.Error(t, err)
}

func TestSign_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	token, err := c.Sign("a@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	sub, err := c.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sub)

	role, err := c.ExtractRole(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	exp, err := c.ExtractExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(config.TokenTTL), exp, 5*time.Second)

	assert.True(t, c.IsValid(token))
}

func TestExtract_WrongKey(t *testing.T) {
	signer := newTestCodec(t)
	verifier, err := NewCodec(&config.Config{JWTSecret: testSecret(100)})
	require.NoError(t, err)

	token, err := signer.Sign("a@x.com", domain.RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.ExtractSubject(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	assert.False(t, verifier.IsValid(token))
}

func TestExtract_Malformed(t *testing.T) {
	c := newTestCodec(t)
	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := c.ExtractRole(token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	}
}

func TestIsValid_NeverPanics(t *testing.T) {
	c := newTestCodec(t)
	for _, token := range []string{"", "garbage", "ey.ey.ey", "....."} {
		assert.NotPanics(t, func() {
			assert.False(t, c.IsValid(token))
		})
	}
}

func TestIsValid_ExpiredToken(t *testing.T) {
	c := newTestCodec(t)

	// Hand-roll a token that expired an hour ago, signed with the same key.
	claims := Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	require.NoError(t, err)

	assert.False(t, c.IsValid(token))

	// Extraction also refuses expired tokens: the parser validates exp.
	_, err = c.ExtractSubject(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerify_RejectsWrongAlgorithm(t *testing.T) {
	c := newTestCodec(t)

	// Token claiming alg=none must be rejected outright.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "a@x.com"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}
