package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jobxnepal/backend/internal/auth"
	"github.com/jobxnepal/backend/internal/models"
	"github.com/jobxnepal/backend/internal/utils"
	"gorm.io/gorm"
)

// AuthMiddleware authenticates the session cookie and loads the full user
// record into the request context.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(auth.CookieName)
		if err != nil || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User is not authenticated."})
			return
		}

		token, err := auth.VerifyJWT(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims."})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims."})
			return
		}

		var user models.User
		if err := db.First(&user, uint(userIDFloat)).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found."})
			return
		}

		ctx.Set(utils.ContextUserKey, user)
		ctx.Next()
	}
}

// RequireRoles guards a route group to the given user roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User is not authenticated."})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": user.Role + " is not allowed to access this resource.",
		})
	}
}
