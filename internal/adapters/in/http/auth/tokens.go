// Package auth verifies and issues the HS256 bearer tokens that carry a caller's
// subject id and marketplace role.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/identity"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingBearerToken = errors.New("missing bearer token")

// Claims is the token payload: the standard registered claims plus the role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies tokens with a shared secret.
type Tokens struct {
	secret []byte
	issuer string
}

// NewTokens returns a signer/verifier. issuer is optional; when set, it is written to
// issued tokens and required on verified ones.
func NewTokens(secret, issuer string) (Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return Tokens{}, errs.NewValueIsRequiredError("JWT_SECRET")
	}
	return Tokens{secret: []byte(secret), issuer: strings.TrimSpace(issuer)}, nil
}

// Issue mints a token for principal valid for ttl from now.
func (t Tokens) Issue(principal identity.Principal, ttl time.Duration, now time.Time) (string, error) {
	if err := principal.Validate(); err != nil {
		return "", err
	}
	if ttl <= 0 {
		return "", errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", nil)
	}

	claims := Claims{
		Role: principal.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.SubjectID(),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and turns its claims into a principal. Every failure is a
// NotAuthenticatedError.
func (t Tokens) Verify(raw string) (identity.Principal, error) {
	if raw == "" {
		return identity.Principal{}, errs.NewNotAuthenticatedErrorWithCause(ErrMissingBearerToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	var claims Claims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...); err != nil {
		return identity.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}

	principal, err := identity.NewPrincipal(claims.Subject, role)
	if err != nil {
		return identity.Principal{}, errs.NewNotAuthenticatedErrorWithCause(err)
	}
	return principal, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
