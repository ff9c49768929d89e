package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/auth"
	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
	"github.com/craftroots/artisan-api/sms"
)

// -------- Request Structs --------

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type PlaceOrderRequest struct {
	Items   []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Address string             `json:"address" binding:"required"`
}

// Validation failures of the order contract; all map to a 400.
var (
	ErrNoItems           = errors.New("order has no items")
	ErrBlankAddress      = errors.New("shipping address is required")
	ErrBadQuantity       = errors.New("quantity must be at least 1")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrMultipleArtisans  = errors.New("all items must be from the same artisan")
	ErrInsufficientStock = errors.New("insufficient stock")
)

func validationFailure(err error) bool {
	for _, target := range []error{ErrNoItems, ErrBlankAddress, ErrBadQuantity, ErrUnknownProduct, ErrMultipleArtisans, ErrInsufficientStock} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// -------- Core Logic --------

// PlaceOrder validates the cart and atomically creates the order row, its
// line items with price snapshots, and the stock decrements. Nothing is
// written unless every step succeeds.
//
// A non-empty idempotencyKey makes the call replay-safe: a key seen before
// returns the order it originally created, without new writes.
func PlaceOrder(db *gorm.DB, buyerID string, req PlaceOrderRequest, idempotencyKey string) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	if req.Address == "" {
		return nil, ErrBlankAddress
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, ErrBadQuantity
		}
	}

	if idempotencyKey != "" {
		if existing, err := findByIdempotencyKey(db, buyerID, idempotencyKey); err == nil {
			return existing, nil
		}
	}

	var buyer models.User
	if err := db.Select("id", "city", "state").First(&buyer, "id = ?", buyerID).Error; err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	artisanID := ""
	var total int64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}
		if artisanID == "" {
			artisanID = product.ArtisanID
		} else if product.ArtisanID != artisanID {
			return nil, ErrMultipleArtisans
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
		}

		total += product.Price * int64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price, // snapshot, decoupled from live price
		})
	}

	order := models.Order{
		BuyerID:     buyerID,
		ArtisanID:   artisanID,
		Status:      models.OrderStatusPending,
		TotalAmount: total,
		Address:     req.Address,
		BuyerCity:   buyer.City,
		BuyerState:  buyer.State,
		Items:       orderItems,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			// Conditional decrement guards against a concurrent order
			// draining the stock between the read above and this write.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, item.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		// A duplicate idempotency key lost a race with another submit of
		// the same request; hand back the order that won.
		if idempotencyKey != "" {
			if existing, lookupErr := findByIdempotencyKey(db, buyerID, idempotencyKey); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, err
	}

	return &order, nil
}

func findByIdempotencyKey(db *gorm.DB, buyerID, key string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").
		Where("buyer_id = ? AND idempotency_key = ?", buyerID, key).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// PlaceOrderHandler creates an order for the session buyer, then fires the
// best-effort artisan notifications.
func PlaceOrderHandler(db *gorm.DB, sender sms.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString(middleware.UserIDKey)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing items or address"})
			return
		}

		order, err := PlaceOrder(db, buyerID, req, c.GetHeader("Idempotency-Key"))
		if err != nil {
			if validationFailure(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log := logger.Get()
			log.Error().Err(err).Str("buyer_id", buyerID).Msg("order: placement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		notifyArtisan(db, sender, order)
		BroadcastOrder(order)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"orderId": order.ID}})
	}
}

func notifyArtisan(db *gorm.DB, sender sms.Sender, order *models.Order) {
	var artisan models.User
	if err := db.Select("id", "phone").First(&artisan, "id = ?", order.ArtisanID).Error; err != nil {
		log := logger.Get()
		log.Warn().Str("order_id", order.ID).Msg("order: artisan lookup for SMS failed")
		return
	}
	location := ""
	if order.BuyerCity != "" && order.BuyerState != "" {
		location = order.BuyerCity + ", " + order.BuyerState
	}
	sms.NotifyOrderPlaced(sender, artisan.Phone, order.ID, order.TotalAmount, location)
}

// GetArtisanOrdersHandler lists the session artisan's orders, newest first.
func GetArtisanOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		var orders []models.Order
		if err := db.
			Where("artisan_id = ?", artisanID).
			Preload("Buyer").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GetBuyerOrdersHandler lists the session buyer's own orders.
func GetBuyerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString(middleware.UserIDKey)
		var orders []models.Order
		if err := db.
			Where("buyer_id = ?", buyerID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GetOrderHandler returns one order to whichever side owns it. Both cookies
// are probed because the detail page is shared by the two portals.
func GetOrderHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		query := db.Preload("Buyer").Preload("Items").Preload("Items.Product").Where("id = ?", orderID)

		authenticated := false
		if token, err := c.Cookie(auth.ArtisanCookie); err == nil {
			if userID, role, err := auth.ParseSession(token, cfg.SessionSecret); err == nil && role == models.RoleArtisan {
				query = query.Where("artisan_id = ?", userID)
				authenticated = true
			}
		}
		if !authenticated {
			if token, err := c.Cookie(auth.BuyerCookie); err == nil {
				if userID, role, err := auth.ParseSession(token, cfg.SessionSecret); err == nil && role == models.RoleBuyer {
					query = query.Where("buyer_id = ?", userID)
					authenticated = true
				}
			}
		}
		if !authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
