package middleware

import (
	"github.com/gin-gonic/gin"
)

// RequestRecorder observes finished requests.
type RequestRecorder interface {
	RequestStarted() func(method, route string, status int)
}

// Metrics records every request under its route template, so ids in paths do
// not create new series.
func Metrics(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := recorder.RequestStarted()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request.Method, route, c.Writer.Status())
	}
}
