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

// UpdateProduct updates one of the session artisan's products. Accepts the
// same form fields as CreateProduct; absent fields keep their value.
func UpdateProduct(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		id := c.Param("id")

		var product models.Product
		if err := db.Where("id = ? AND artisan_id = ?", id, artisanID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		if v := strings.TrimSpace(c.PostForm("name")); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = strings.TrimSpace(v)
		}
		if v := c.PostForm("price"); v != "" {
			price, err := strconv.ParseInt(v, 10, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Valid price is required"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("stock"); v != "" {
			stock, err := strconv.Atoi(v)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Valid stock is required"})
				return
			}
			product.Stock = stock
		}

		if file, err := c.FormFile("image"); err == nil {
			url, err := uploadControllers.SaveImage(c, file, cfg.UploadDir)
			if err != nil {
				if errors.Is(err, uploadControllers.ErrNotImage) || errors.Is(err, uploadControllers.ErrTooLarge) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				}
				return
			}
			product.ImageURL = url
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
