package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/models"
	"github.com/craftroots/artisan-api/sms"
)

type LoginRequest struct {
	// Identifier is an email address or a phone number.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginArtisan authenticates against the artisan portal.
func LoginArtisan(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return loginHandler(db, cfg, models.RoleArtisan, ArtisanCookie,
		"This login is for sellers/artisans only. Please use buyer login for buyer accounts.")
}

// LoginBuyer authenticates against the buyer portal.
func LoginBuyer(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return loginHandler(db, cfg, models.RoleBuyer, BuyerCookie,
		"This login is for buyers only. Please use seller login for artisan accounts.")
}

func loginHandler(db *gorm.DB, cfg *config.Config, role models.Role, cookieName, wrongPortalMsg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
			return
		}

		user, err := findByIdentifier(db, req.Identifier)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": wrongPortalMsg})
			return
		}

		token, err := IssueSession(user.ID, user.Role, cfg.SessionSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		SetSessionCookie(c, cookieName, token, cfg.Production())

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    gin.H{"id": user.ID, "name": user.Name, "role": user.Role},
		})
	}
}

func findByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	cleaned := strings.TrimSpace(identifier)

	var user models.User
	if strings.Contains(cleaned, "@") {
		err := db.Where("email = ?", strings.ToLower(cleaned)).First(&user).Error
		return &user, err
	}

	phone, err := sms.NormalizePhone(cleaned)
	if err != nil {
		return nil, err
	}
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Check reports the authentication state of whichever session cookie is
// present and valid.
func Check(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, probe := range []struct {
			cookie string
			role   models.Role
		}{
			{ArtisanCookie, models.RoleArtisan},
			{BuyerCookie, models.RoleBuyer},
		} {
			token, err := c.Cookie(probe.cookie)
			if err != nil {
				continue
			}
			userID, role, err := ParseSession(token, cfg.SessionSecret)
			if err != nil || role != probe.role {
				continue
			}
			var user models.User
			if err := db.Select("id", "name", "role").First(&user, "id = ?", userID).Error; err != nil {
				continue
			}
			if user.Role != probe.role {
				continue
			}
			c.JSON(http.StatusOK, gin.H{
				"authenticated": true,
				"role":          user.Role,
				"user":          gin.H{"id": user.ID, "name": user.Name},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"authenticated": false, "role": nil, "user": nil})
	}
}

// Logout clears both role cookies.
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ClearSessionCookies(c, cfg.Production())
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
