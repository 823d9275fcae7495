// Package auth verifies the access tokens issued by the external identity
// provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utafrali/artfolio/pkg/middleware"
)

// Claims is the token payload. Subject is the artist id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens signed with a shared secret.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

type Option func(*Verifier)

// WithAudience requires the aud claim to contain audience.
func WithAudience(audience string) Option {
	return func(v *Verifier) { v.audience = audience }
}

// WithLeeway tolerates clock skew when checking exp, nbf and iat.
func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) { v.leeway = d }
}

// NewVerifier returns a verifier for secret. An empty issuer is not checked.
func NewVerifier(secret, issuer string, opts ...Option) *Verifier {
	v := &Verifier{secret: []byte(secret), issuer: issuer, leeway: 30 * time.Second}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify satisfies middleware.TokenValidator.
func (v *Verifier) Verify(_ context.Context, tokenString string) (*middleware.Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}
	if claims.Subject == "" {
		return nil, errors.New("access token has no subject")
	}

	return &middleware.Claims{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// Issue signs a token for subject. It backs local development and tests,
// where no identity provider runs.
func (v *Verifier) Issue(subject, email, name string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
