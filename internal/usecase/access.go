package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
)

// AccessPolicy decides who is the restaurant administrator.
type AccessPolicy struct {
	adminEmail string
}

// NewAccessPolicy constructs AccessPolicy for the given administrator email.
func NewAccessPolicy(adminEmail string) *AccessPolicy {
	return &AccessPolicy{adminEmail: strings.ToLower(strings.TrimSpace(adminEmail))}
}

// IsAdmin reports whether identity belongs to the administrator.
func (p *AccessPolicy) IsAdmin(identity *model.Identity) bool {
	if identity == nil || p.adminEmail == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(identity.Email), p.adminEmail)
}

func (p *AccessPolicy) requireAdmin(identity *model.Identity) error {
	if identity == nil {
		return domainErrors.ErrUnauthenticated
	}
	if !p.IsAdmin(identity) {
		return domainErrors.ErrForbidden
	}
	return nil
}
