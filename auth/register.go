package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/models"
	"github.com/craftroots/artisan-api/sms"
)

type ArtisanRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,inphone"`
	Password string `json:"password" binding:"required,min=6"`
	City     string `json:"city" binding:"required,min=2"`
	State    string `json:"state" binding:"required,min=2"`

	Gender     string   `json:"gender" binding:"omitempty,oneof=male female other"`
	Age        int      `json:"age" binding:"omitempty,gte=18,lte=100"`
	Address    string   `json:"address"`
	District   string   `json:"district"`
	Pincode    string   `json:"pincode"`
	CraftType  string   `json:"craftType"`
	Experience int      `json:"experience" binding:"omitempty,gte=0"`
	Languages  []string `json:"languages"`
}

type BuyerRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,inphone"`
	Password string `json:"password" binding:"required,min=6"`
	City     string `json:"city" binding:"required,min=2"`
	State    string `json:"state" binding:"required,min=2"`
}

// RegisterArtisan creates an artisan account and opens a session.
func RegisterArtisan(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ArtisanRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		languages := ""
		if len(req.Languages) > 0 {
			encoded, err := json.Marshal(req.Languages)
			if err == nil {
				languages = string(encoded)
			}
		}

		user := models.User{
			Name:       req.Name,
			Role:       models.RoleArtisan,
			City:       req.City,
			State:      req.State,
			Gender:     req.Gender,
			Age:        req.Age,
			Address:    req.Address,
			District:   req.District,
			Pincode:    req.Pincode,
			CraftType:  req.CraftType,
			Experience: req.Experience,
			Languages:  languages,
		}
		createUser(c, db, cfg, &user, req.Phone, req.Email, req.Password, ArtisanCookie)
	}
}

// RegisterBuyer creates a buyer account and opens a session.
func RegisterBuyer(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuyerRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user := models.User{
			Name:  req.Name,
			Role:  models.RoleBuyer,
			City:  req.City,
			State: req.State,
		}
		createUser(c, db, cfg, &user, req.Phone, req.Email, req.Password, BuyerCookie)
	}
}

func createUser(c *gin.Context, db *gorm.DB, cfg *config.Config, user *models.User, phone, email, password, cookieName string) {
	normalizedPhone, err := sms.NormalizePhone(phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}
	user.Phone = normalizedPhone

	if email != "" {
		lowered := strings.ToLower(strings.TrimSpace(email))
		user.Email = &lowered
	}

	// Duplicate check before the insert so the caller gets a clean 409
	// instead of a driver-specific constraint error.
	var existing models.User
	query := db.Where("phone = ?", user.Phone)
	if user.Email != nil {
		query = query.Or("email = ?", *user.Email)
	}
	if err := query.First(&existing).Error; err == nil {
		if existing.Phone == user.Phone {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		} else {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	user.PasswordHash = string(hash)

	if err := db.Create(user).Error; err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("auth: user create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	token, err := IssueSession(user.ID, user.Role, cfg.SessionSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	SetSessionCookie(c, cookieName, token, cfg.Production())

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"phone": user.Phone,
		"role":  user.Role,
		"city":  user.City,
		"state": user.State,
	})
}
