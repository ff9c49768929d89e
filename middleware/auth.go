package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftroots/artisan-api/auth"
	"github.com/craftroots/artisan-api/models"
)

// Context key under which the authenticated user's id is stored.
const UserIDKey = "user_id"

// RequireArtisan aborts with 401 unless a valid artisan session cookie is
// present. On success the artisan's id is placed in the gin context.
func RequireArtisan(secret string) gin.HandlerFunc {
	return requireSession(secret, auth.ArtisanCookie, models.RoleArtisan)
}

// RequireBuyer is the buyer-side counterpart of RequireArtisan.
func RequireBuyer(secret string) gin.HandlerFunc {
	return requireSession(secret, auth.BuyerCookie, models.RoleBuyer)
}

func requireSession(secret, cookieName string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		userID, tokenRole, err := auth.ParseSession(token, secret)
		if err != nil || tokenRole != role {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
