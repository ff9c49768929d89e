package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/craftroots/artisan-api/controllers/product"
	"github.com/craftroots/artisan-api/middleware"
)

// SetupProductRoutes registers the public catalog plus the artisan-only
// management endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	artisan := middleware.RequireArtisan(deps.Config.SessionSecret)

	products := r.Group("/products")
	{
		// Public browsing
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		// Artisan catalog management
		products.POST("", artisan, productcontroller.CreateProduct(db, deps.Config))
		products.PUT("/:id", artisan, productcontroller.UpdateProduct(db, deps.Config))
		products.DELETE("/:id", artisan, productcontroller.DeleteProduct(db))
		products.GET("/export", artisan, productcontroller.ExportProductsToExcel(db))
	}
}
