package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jobxnepal/backend/internal/models"
)

const ContextUserKey = "user"

// GetCurrentUser returns the authenticated user placed in the gin context by
// the auth middleware.
func GetCurrentUser(ctx *gin.Context) (models.User, error) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return models.User{}, fmt.Errorf("user not authenticated")
	}

	user, ok := value.(models.User)
	if !ok {
		return models.User{}, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}
