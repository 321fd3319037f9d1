package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "no-referrer")
}

// RequestID tags every request with a correlation id, echoed back in
// the response headers.
func RequestID(ctx *gin.Context) {
	rid := ctx.GetHeader("X-Request-Id")
	if rid == "" {
		rid = uuid.NewString()
	}
	ctx.Set("request_id", rid)
	ctx.Header("X-Request-Id", rid)
}
