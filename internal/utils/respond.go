package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondError is the single funnel for handler failures: every error leaves
// the API as a {success:false, message} envelope with the given status.
func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
