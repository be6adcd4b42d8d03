package auth

import (
	"time"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (*TokenClaims, error)
	Name() string
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	Identity  model.Identity
	ID        string
	ExpiresAt time.Time
}

type Options struct {
	TTL time.Duration
}
