// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/yochirolee/comercial-sub000/internal/core/apperror"
	appctx "github.com/yochirolee/comercial-sub000/internal/core/context"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// Recovery converts a handler panic into a 500 response. The stack
// trace goes to the log only; the client sees a generic internal error
// plus the request ID so the failing request can be found later.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				logger.Error(ctx, "panic recovered",
					"error", r,
					"stack", string(debug.Stack()),
				)

				appErr := apperror.NewInternal(fmt.Errorf("panic: %v", r))
				if tc := appctx.GetTrace(ctx); tc != nil {
					appErr = appErr.WithDetail("requestId", tc.RequestID)
				}
				_ = c.Error(appErr)
				c.Abort()
			}
		}()
		c.Next()
	}
}
