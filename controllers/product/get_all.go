package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/models"
)

// GetProducts lists the catalog, newest first. Optional filters: search
// (name/description substring), min_price, max_price (paise), artisan_id.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Artisan")

		if search := c.Query("search"); search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern)
		}

		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			if mp, err := strconv.ParseInt(minPriceStr, 10, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			if mp, err := strconv.ParseInt(maxPriceStr, 10, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}

		if artisanID := c.Query("artisan_id"); artisanID != "" {
			query = query.Where("artisan_id = ?", artisanID)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}
