package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/server/http/dto"
)

const (
	// SessionContextKey is a gin context key for the request session.
	SessionContextKey = "session"
	// AuthCookieName is the cookie holding the session token.
	AuthCookieName = "auth-token"

	authCookieMaxAge = 24 * 60 * 60
)

// SessionResolver turns a token into a session. Invalid tokens give an
// anonymous session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) model.Session
}

// AdminChecker decides whether an identity is the administrator.
type AdminChecker interface {
	IsAdmin(identity *model.Identity) bool
}

// Session resolves the caller once per request. It never rejects.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := resolver.Resolve(c.Request.Context(), extractToken(c))
		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// CurrentSession returns the session stored by Session.
func CurrentSession(c *gin.Context) model.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return model.Session{}
	}
	session, _ := val.(model.Session)
	return session
}

// AuthRequired rejects anonymous API calls.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects API calls from anyone but the administrator.
func AdminRequired(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		if !checker.IsAdmin(session.Identity) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "access denied"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie stores token in the session cookie for one day.
func SetAuthCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   authCookieMaxAge,
		HttpOnly: true,
		Secure:   c.Request != nil && c.Request.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie removes the session cookie.
func ClearAuthCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
