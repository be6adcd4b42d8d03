package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/usecase"
)

// PageGuard decides page navigation for a session.
type PageGuard interface {
	Check(path string, session model.Session) usecase.GuardDecision
	Authorize(path string, identity *model.Identity) usecase.GuardDecision
}

// RouteGuard redirects visitors away from pages they cannot open. It must
// run after Session.
func RouteGuard(guard PageGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		session := CurrentSession(c)

		decision := guard.Check(path, session)
		if decision.Action == usecase.GuardAllow {
			decision = guard.Authorize(path, session.Identity)
		}
		if decision.Action != usecase.GuardAllow {
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}
