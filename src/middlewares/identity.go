package middlewares

import (
	"log"
	"net/http"
	"shareit/src/config"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity resolves the acting user from the gateway-supplied
// X-Sharer-User-Id header. Existence of the user is checked by the
// services, not here.
func Identity(ctx *gin.Context) {
	raw := ctx.GetHeader(config.IDENTITY_HEADER)
	if raw == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + config.IDENTITY_HEADER + " header"})
		return
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		log.Printf("Invalid %s header %q\n", config.IDENTITY_HEADER, raw)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + config.IDENTITY_HEADER + " header"})
		return
	}
	ctx.Set("id", uint(id))
}
