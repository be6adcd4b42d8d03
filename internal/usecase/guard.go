package usecase

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/polkiloo/eatery/internal/domain/model"
)

// GuardAction is the outcome of a route check.
type GuardAction int

const (
	GuardAllow GuardAction = iota
	// GuardLogin sends the visitor to the login page.
	GuardLogin
	// GuardDeny sends a signed-in visitor without rights to the access denied page.
	GuardDeny
)

// GuardDecision tells the page middleware what to do with a request.
type GuardDecision struct {
	Action   GuardAction
	Location string
}

const (
	loginPath        = "/login"
	accessDeniedPath = "/access-denied"
)

var (
	protectedPrefixes = []string{"/profile", "/admin", "/admin/orders"}
	adminPrefixes     = []string{"/admin"}
	excludedPrefixes  = []string{"/api", "/_next", "/_static", "/_vercel", "/metrics", "/healthz"}

	// fileSegment matches a leading segment such as favicon.ico.
	fileSegment = regexp.MustCompile(`^/[\w-]+\.\w+`)
)

// RouteGuard gates page routes by session. It only decides navigation;
// handlers still enforce data access.
type RouteGuard struct {
	access *AccessPolicy
}

// NewRouteGuard constructs RouteGuard.
func NewRouteGuard(access *AccessPolicy) *RouteGuard {
	return &RouteGuard{access: access}
}

// Excluded reports whether p is never gated: API routes, framework assets
// and paths whose first segment looks like a file. Files below a protected
// prefix stay protected.
func (g *RouteGuard) Excluded(p string) bool {
	return matchesAny(p, excludedPrefixes) || fileSegment.MatchString(p)
}

// Protected reports whether p requires a session.
func (g *RouteGuard) Protected(p string) bool {
	return !g.Excluded(p) && matchesAny(p, protectedPrefixes)
}

// AdminOnly reports whether p is reserved for the administrator.
func (g *RouteGuard) AdminOnly(p string) bool {
	return !g.Excluded(p) && matchesAny(p, adminPrefixes)
}

// Check is the coarse gate run before any page handler.
func (g *RouteGuard) Check(p string, session model.Session) GuardDecision {
	if !g.Protected(p) || session.Authenticated() {
		return GuardDecision{Action: GuardAllow}
	}
	return GuardDecision{Action: GuardLogin, Location: loginPath + "?callbackUrl=" + callbackParam(p)}
}

// Authorize is the admin gate run once the identity is known.
func (g *RouteGuard) Authorize(p string, identity *model.Identity) GuardDecision {
	if !g.AdminOnly(p) {
		return GuardDecision{Action: GuardAllow}
	}
	if identity == nil {
		return GuardDecision{Action: GuardLogin, Location: loginPath}
	}
	if !g.access.IsAdmin(identity) {
		return GuardDecision{Action: GuardDeny, Location: accessDeniedPath}
	}
	return GuardDecision{Action: GuardAllow}
}

// callbackParam escapes p for a query value but keeps slashes readable.
func callbackParam(p string) string {
	return strings.ReplaceAll(url.QueryEscape(p), "%2F", "/")
}

func matchesAny(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
