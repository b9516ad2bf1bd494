// Package token issues and verifies signed bearer tokens.
//
// Tokens are HS256 JWTs carrying the user's email as subject. They are
// stateless: nothing is persisted, and a token stays valid until it expires.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/task-list-api/internal/constants"
)

var (
	// ErrMissingSecret is returned by NewProvider when no signing secret is configured.
	ErrMissingSecret = errors.New("token: signing secret not configured")
	// ErrInvalidToken wraps every verification failure.
	ErrInvalidToken = errors.New("token: invalid or expired token")
	// ErrTokenExpired is additionally wrapped when the token is well formed but past its expiry.
	ErrTokenExpired = errors.New("token: expired")
)

// Claims is the JWT payload.
type Claims struct {
	jwt.RegisteredClaims
}

// Provider signs and verifies tokens with a shared secret.
type Provider struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customizes a Provider.
type Option func(*Provider)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithIssuer sets the iss claim.
func WithIssuer(issuer string) Option {
	return func(p *Provider) {
		p.issuer = issuer
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProvider creates a Provider. An empty secret is a configuration error.
func NewProvider(secret string, opts ...Option) (*Provider, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	p := &Provider{
		secret: []byte(secret),
		ttl:    constants.TokenTTL,
		issuer: constants.TokenIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Issue returns a signed token for subject.
func (p *Provider) Issue(subject string) (string, error) {
	now := p.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns its subject.
func (p *Provider) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(p.issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
