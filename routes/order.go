package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/craftroots/artisan-api/controllers/order"
	"github.com/craftroots/artisan-api/middleware"
)

// SetupOrderRoutes registers checkout and order management endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	artisan := middleware.RequireArtisan(deps.Config.SessionSecret)
	buyer := middleware.RequireBuyer(deps.Config.SessionSecret)

	orders := r.Group("/orders")
	{
		orders.POST("", buyer, orderControllers.PlaceOrderHandler(db, deps.SMS))
		orders.GET("/mine", buyer, orderControllers.GetBuyerOrdersHandler(db))

		orders.GET("", artisan, orderControllers.GetArtisanOrdersHandler(db))
		orders.GET("/export", artisan, orderControllers.ExportOrdersToExcel(db))
		orders.GET("/ws", artisan, orderControllers.OrderFeedHandler())

		// Detail lookup works for either role; the handler resolves the
		// session itself and scopes the query to the caller.
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db, deps.Config))
		orders.POST("/:orderID/complete", artisan, orderControllers.CompleteOrderHandler(db, deps.SMS))
	}
}
