package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	insightsControllers "github.com/craftroots/artisan-api/controllers/insights"
	"github.com/craftroots/artisan-api/middleware"
)

// SetupInsightRoutes registers the artisan analytics dashboard endpoints.
func SetupInsightRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	insights := r.Group("/insights", middleware.RequireArtisan(deps.Config.SessionSecret))
	{
		insights.GET("/pricing-trends", insightsControllers.PricingTrendsHandler(db))
		insights.GET("/customers", insightsControllers.CustomerInsightsHandler(db))
		insights.GET("/locations", insightsControllers.LocationsHandler(db))
	}
}
