// Package auth decodes the session token issued by the upstream login service
// into the acting user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"courier-admin/internal/apperr"
	"courier-admin/internal/domain"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	BranchID *int64 `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 session tokens against a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier returns a Verifier for secret. An empty secret is rejected.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}, nil
}

// Verify parses token and returns the actor it names.
// Every failure wraps apperr.ErrUnauthorized.
func (v *Verifier) Verify(token string) (domain.Actor, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	actor := domain.Actor{
		UserID:   claims.UserID,
		Role:     domain.Role(claims.Role),
		BranchID: claims.BranchID,
	}
	switch {
	case actor.UserID <= 0:
		return domain.Actor{}, fmt.Errorf("%w: missing user_id", apperr.ErrUnauthorized)
	case !actor.Role.Valid():
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", apperr.ErrUnauthorized, claims.Role)
	case actor.Role.RequiresBranch() && actor.BranchID == nil:
		return domain.Actor{}, fmt.Errorf("%w: role %s without branch_id", apperr.ErrUnauthorized, claims.Role)
	}
	return actor, nil
}
