package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// SimpleTimeout returns middleware that sets a deadline on the request
// context. Handlers and the storage layer must respect ctx.Done(); a
// request that outlives the deadline surfaces context.DeadlineExceeded
// from its blocking calls, which the error mapping turns into a 504.
//
// The handler chain is never run on a separate goroutine, so there is
// no race against the response writer.
func SimpleTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
