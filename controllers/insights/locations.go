package insightsControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeoBucket struct {
	GeoPoint
	Count int `json:"count"`
}

// Minimal lookup for Indian states/cities to lat/lng.
var geoTable = map[string]GeoPoint{
	"Delhi":          {28.6139, 77.2090},
	"Rajasthan":      {26.9124, 75.7873},
	"Gujarat":        {23.0225, 72.5714},
	"Maharashtra":    {19.0760, 72.8777},
	"Karnataka":      {12.9716, 77.5946},
	"Tamil Nadu":     {13.0827, 80.2707},
	"Kerala":         {10.8505, 76.2711},
	"Telangana":      {17.3850, 78.4867},
	"Andhra Pradesh": {16.5062, 80.6480},
	"Madhya Pradesh": {23.2599, 77.4126},
	"Uttar Pradesh":  {26.8467, 80.9462},
	"Bihar":          {25.5941, 85.1376},
	"West Bengal":    {22.5726, 88.3639},
	"Punjab":         {31.1471, 75.3412},
	"Haryana":        {29.0588, 76.0856},
	"Odisha":         {20.2961, 85.8245},
}

// BucketLocations counts orders per known geo point, resolving the buyer
// city first and falling back to the state.
func BucketLocations(orders []models.Order) []GeoBucket {
	buckets := make(map[string]*GeoBucket)
	for _, o := range orders {
		geo, ok := geoTable[o.BuyerCity]
		if !ok {
			geo, ok = geoTable[o.BuyerState]
		}
		if !ok {
			continue
		}
		key := fmt.Sprintf("%v,%v", geo.Lat, geo.Lng)
		if b := buckets[key]; b != nil {
			b.Count++
		} else {
			buckets[key] = &GeoBucket{GeoPoint: geo, Count: 1}
		}
	}

	result := make([]GeoBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	return result
}

// LocationsHandler serves GET /insights/locations: trailing-30-day completed
// orders for the session artisan, bucketed onto the demand map.
func LocationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		now := time.Now()
		start := now.AddDate(0, 0, -29).Truncate(24 * time.Hour)

		var orders []models.Order
		if err := db.
			Select("buyer_city", "buyer_state").
			Where("artisan_id = ? AND status = ? AND created_at BETWEEN ? AND ?", artisanID, models.OrderStatusCompleted, start, now).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load locations"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": BucketLocations(orders)})
	}
}
