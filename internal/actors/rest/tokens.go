package rest

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokensArgs are the mandatory arguments for the creation of Tokens.
type TokensArgs struct {
	// Secret signs and verifies tokens with HS256.
	Secret string

	// TTL is the lifetime of an issued token.
	TTL time.Duration
}

// TokensOptArgs are the optional arguments for building Tokens.
type TokensOptArgs = func(*Tokens)

// WithTokenNowFunc overrides the clock used to issue and verify tokens. Useful for testing.
func WithTokenNowFunc(nowFunc func() time.Time) TokensOptArgs {
	return func(t *Tokens) {
		t.nowFunc = nowFunc
	}
}

// NewTokens creates a new Tokens.
func NewTokens(args TokensArgs, optArgs ...TokensOptArgs) *Tokens {
	t := &Tokens{secret: []byte(args.Secret), ttl: args.TTL, nowFunc: time.Now}
	for _, opt := range optArgs {
		opt(t)
	}
	return t
}

// Tokens issues and verifies session tokens whose subject is the user id.
type Tokens struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

// Issue returns a signed token for the user.
func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	now := t.nowFunc()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the user id the token was issued to.
func (t *Tokens) Verify(token string) (uuid.UUID, error) {
	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.nowFunc), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("error parsing token: %w", err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("token subject is not a user id")
	}
	return id, nil
}
