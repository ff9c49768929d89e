package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/config"
	uploadControllers "github.com/craftroots/artisan-api/controllers/upload"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

// CreateProduct creates a product owned by the session artisan, with an
// optional image upload. Multipart form fields: name, description, price
// (paise), stock, image.
func CreateProduct(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
			return
		}

		price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid price is required"})
			return
		}

		stock, err := strconv.Atoi(c.PostForm("stock"))
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid stock is required"})
			return
		}

		imageURL := ""
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err = uploadControllers.SaveImage(c, file, cfg.UploadDir)
			if err != nil {
				if errors.Is(err, uploadControllers.ErrNotImage) || errors.Is(err, uploadControllers.ErrTooLarge) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
				}
				return
			}
		}

		product := models.Product{
			ArtisanID:   artisanID,
			Name:        name,
			Description: strings.TrimSpace(c.PostForm("description")),
			Price:       price,
			Stock:       stock,
			ImageURL:    imageURL,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}
