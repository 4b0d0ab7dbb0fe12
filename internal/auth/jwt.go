// Package auth issues and checks session tokens and password hashes.
//
// SESSION FLOW:
//  1. POST /api/auth/register or /api/auth/login verifies the credentials.
//  2. The server signs a JWT carrying the user ID and role and stores it in
//     the HttpOnly "session" cookie.
//  3. RequireAuth / OptionalAuth read the cookie on later requests and put
//     the caller's Identity in the request context.
//  4. POST /api/auth/logout overwrites the cookie with an expired one.
//
// Tokens are HS256 and stateless: checking one needs only the secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "collabspace"

// DefaultSessionTTL matches the lifetime of the session cookie.
const DefaultSessionTTL = 2 * time.Hour

var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: invalid token")
)

// Identity is who a validated token belongs to.
type Identity struct {
	UserID string
	Role   string
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService returns a TokenService signing with secret. A ttl of zero
// uses DefaultSessionTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is how long issued tokens stay valid.
func (s *TokenService) TTL() time.Duration { return s.ttl }

type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Generate signs a session token for the user with the service's TTL.
func (s *TokenService) Generate(userID, role string) (string, error) {
	return s.GenerateWithDuration(userID, role, s.ttl)
}

// GenerateWithDuration signs a token that expires after d. Tests use a
// negative d to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID, role string, d time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, algorithm, issuer and expiry, and returns the
// identity in the token.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{UserID: c.Subject, Role: c.Role}, nil
}
