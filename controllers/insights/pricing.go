// Package insightsControllers derives read-only analytics for the artisan
// dashboard: pricing suggestions, demand trends, and customer aggregates.
// Everything here is a pure scan over completed orders; the handlers only
// load rows and serialize results.
package insightsControllers

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

type DemandTrend string

const (
	TrendRising  DemandTrend = "rising"
	TrendFalling DemandTrend = "falling"
	TrendStable  DemandTrend = "stable"
)

type PricingSuggestion struct {
	ProductID      string      `json:"productId"`
	Name           string      `json:"name"`
	CurrentPrice   float64     `json:"currentPrice"`
	AvgPaid        float64     `json:"avgPaid"`
	MinPaid        float64     `json:"minPaid"`
	MaxPaid        float64     `json:"maxPaid"`
	UnitsSold      int         `json:"unitsSold"`
	Revenue        float64     `json:"revenue"`
	DemandTrend    DemandTrend `json:"demandTrend"`
	SuggestedPrice float64     `json:"suggestedPrice"`
	Rationale      string      `json:"rationale"`
}

type SeasonalPoint struct {
	Month  string `json:"month"`
	Orders int    `json:"orders"`
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClassifyDemand compares the trailing 30-day sales run-rate against the
// 90-day one. Rising needs the short rate to exceed 1.2x the long rate with
// at least 3 units moved in 30 days; falling mirrors it at 0.8x and 3 units
// in 90 days.
func ClassifyDemand(last30Units, last90Units int) DemandTrend {
	last30Rate := float64(last30Units) / 30
	last90Rate := float64(last90Units) / 90
	switch {
	case last30Rate > last90Rate*1.2 && last30Units >= 3:
		return TrendRising
	case last30Rate < last90Rate*0.8 && last90Units >= 3:
		return TrendFalling
	default:
		return TrendStable
	}
}

// SuggestPrice derives a suggested price from the average realized price and
// the demand trend. Rising demand nudges up 5-10% (never below the current
// price), falling nudges down 5-10% (never above it), stable blends
// 0.6xavgPaid with 0.4xcurrent. Result rounded to 2 decimal places.
func SuggestPrice(avgPaid, currentPrice float64, trend DemandTrend) (float64, string) {
	var suggested float64
	var rationale string
	switch trend {
	case TrendRising:
		suggested = math.Max(avgPaid*1.05, currentPrice)
		suggested = math.Min(suggested, avgPaid*1.1)
		rationale = "Demand rising in last 30 days vs 90; slight increase recommended."
	case TrendFalling:
		suggested = math.Min(avgPaid*0.95, currentPrice)
		suggested = math.Max(suggested, avgPaid*0.9)
		rationale = "Demand softening; a small discount can improve conversion."
	default:
		suggested = avgPaid*0.6 + currentPrice*0.4
		rationale = "Stable demand; align price closer to realized average."
	}
	return round2(suggested), rationale
}

type productStats struct {
	prices      []float64 // unit prices paid, expanded per unit
	unitsSold   int
	revenue     float64
	last30Units int
	last90Units int
}

// ComputePricing walks completed orders (expected: a 12-month window) and
// produces one suggestion per product, sorted by revenue descending.
// Products without sales report their current price and a stable trend.
func ComputePricing(products []models.Product, orders []models.Order, now time.Time) []PricingSuggestion {
	stats := make(map[string]*productStats, len(products))
	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
	}

	for _, order := range orders {
		age := now.Sub(order.CreatedAt)
		for _, item := range order.Items {
			if !known[item.ProductID] {
				continue
			}
			s := stats[item.ProductID]
			if s == nil {
				s = &productStats{}
				stats[item.ProductID] = s
			}

			paid := float64(item.UnitPrice)
			for i := 0; i < item.Quantity; i++ {
				s.prices = append(s.prices, paid)
			}
			s.unitsSold += item.Quantity
			s.revenue += paid * float64(item.Quantity)

			if age <= 30*24*time.Hour {
				s.last30Units += item.Quantity
			}
			if age <= 90*24*time.Hour {
				s.last90Units += item.Quantity
			}
		}
	}

	pricing := make([]PricingSuggestion, 0, len(products))
	for _, p := range products {
		current := float64(p.Price)
		s := stats[p.ID]
		if s == nil {
			s = &productStats{}
		}

		avgPaid, minPaid, maxPaid := current, current, current
		if len(s.prices) > 0 {
			sum := 0.0
			minPaid, maxPaid = s.prices[0], s.prices[0]
			for _, paid := range s.prices {
				sum += paid
				minPaid = math.Min(minPaid, paid)
				maxPaid = math.Max(maxPaid, paid)
			}
			avgPaid = round2(sum / float64(len(s.prices)))
		}

		trend := ClassifyDemand(s.last30Units, s.last90Units)
		suggested, rationale := SuggestPrice(avgPaid, current, trend)

		pricing = append(pricing, PricingSuggestion{
			ProductID:      p.ID,
			Name:           p.Name,
			CurrentPrice:   current,
			AvgPaid:        avgPaid,
			MinPaid:        minPaid,
			MaxPaid:        maxPaid,
			UnitsSold:      s.unitsSold,
			Revenue:        round2(s.revenue),
			DemandTrend:    trend,
			SuggestedPrice: suggested,
			Rationale:      rationale,
		})
	}

	sort.SliceStable(pricing, func(i, j int) bool {
		return pricing[i].Revenue > pricing[j].Revenue
	})
	return pricing
}

// SeasonalDemand buckets order counts into the 12 calendar months.
func SeasonalDemand(orders []models.Order) []SeasonalPoint {
	counts := make(map[string]int)
	for _, order := range orders {
		counts[monthNames[order.CreatedAt.Month()-1]]++
	}
	points := make([]SeasonalPoint, 0, len(monthNames))
	for _, m := range monthNames {
		points = append(points, SeasonalPoint{Month: m, Orders: counts[m]})
	}
	return points
}

// PricingTrendsHandler serves GET /insights/pricing for the session artisan:
// per-product pricing suggestions over the last 12 months of completed
// orders, plus the seasonal demand curve.
func PricingTrendsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		now := time.Now()
		startDate := now.AddDate(0, -12, 0)

		var products []models.Product
		if err := db.Select("id", "name", "price").Where("artisan_id = ?", artisanID).Find(&products).Error; err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("insights: product load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate pricing/trends"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("artisan_id = ? AND status = ? AND created_at >= ?", artisanID, models.OrderStatusCompleted, startDate).
			Preload("Items").
			Find(&orders).Error; err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("insights: order load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate pricing/trends"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"pricing":        ComputePricing(products, orders, now),
			"seasonalDemand": SeasonalDemand(orders),
		})
	}
}
