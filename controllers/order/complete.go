package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
	"github.com/craftroots/artisan-api/sms"
)

var ErrAlreadyCompleted = errors.New("order already completed")

// CompleteOrder flips a pending order to completed. Only the owning artisan
// may complete it.
func CompleteOrder(db *gorm.DB, artisanID, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Buyer").
		Where("id = ? AND artisan_id = ?", orderID, artisanID).
		First(&order).Error; err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	if err := db.Model(&order).Update("status", models.OrderStatusCompleted).Error; err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCompleted
	return &order, nil
}

// CompleteOrderHandler marks an order completed and best-effort notifies the
// buyer by SMS.
func CompleteOrderHandler(db *gorm.DB, sender sms.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		orderID := c.Param("orderID")

		order, err := CompleteOrder(db, artisanID, orderID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, ErrAlreadyCompleted):
				c.JSON(http.StatusConflict, gin.H{"error": "Order already completed"})
			default:
				log := logger.Get()
				log.Error().Err(err).Str("order_id", orderID).Msg("order: completion failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
			}
			return
		}

		if order.Buyer.Phone != "" {
			sms.NotifyOrderCompleted(sender, order.Buyer.Phone, order.ID)
		} else {
			log := logger.Get()
			log.Warn().Str("order_id", order.ID).Msg("order: no buyer phone for completion SMS")
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order marked as completed"})
	}
}
