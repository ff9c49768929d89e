package insightsControllers

import (
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

type RegionStat struct {
	Region string  `json:"region"`
	Orders int     `json:"orders"`
	Sales  float64 `json:"sales"`
}

type ProductStat struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"` // units, matching the dashboard's usage
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

type BuyerPreferences struct {
	PriceRange        PriceRange      `json:"priceRange"`
	PopularCategories []CategoryStat  `json:"popularCategories"`
	SeasonalTrends    []SeasonalPoint `json:"seasonalTrends"`
}

type CustomerInsights struct {
	TopRegions        []RegionStat     `json:"topRegions"`
	TopProducts       []ProductStat    `json:"topProducts"`
	BuyerPreferences  BuyerPreferences `json:"buyerPreferences"`
	TotalCustomers    int              `json:"totalCustomers"`
	RepeatCustomers   int              `json:"repeatCustomers"`
	AverageOrderValue float64          `json:"averageOrderValue"`
}

// ClassifyCategory maps a product name to a craft category by keyword.
func ClassifyCategory(name string) string {
	lowered := strings.ToLower(name)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lowered, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("diya", "candle", "lamp"):
		return "Home Decor"
	case contains("scarf", "shirt", "dress", "fabric"):
		return "Textiles"
	case contains("pot", "planter", "vase"):
		return "Kitchenware"
	case contains("ring", "necklace", "earring"):
		return "Jewelry"
	case contains("basket", "rug", "mat"):
		return "Home Decor"
	default:
		return "Other"
	}
}

func orderTotal(order models.Order) float64 {
	total := 0.0
	for _, item := range order.Items {
		total += float64(item.UnitPrice) * float64(item.Quantity)
	}
	return total
}

// ComputeCustomerInsights aggregates completed orders (expected: a 6-month
// window, preloaded with Buyer and Items.Product) into the dashboard view.
// An empty window yields the zeroed structure, not an error.
func ComputeCustomerInsights(orders []models.Order) CustomerInsights {
	insights := CustomerInsights{
		TopRegions:  []RegionStat{},
		TopProducts: []ProductStat{},
		BuyerPreferences: BuyerPreferences{
			PopularCategories: []CategoryStat{},
			SeasonalTrends:    []SeasonalPoint{},
		},
	}
	if len(orders) == 0 {
		return insights
	}

	regionStats := make(map[string]*RegionStat)
	productStats := make(map[string]*ProductStat)
	categoryCounts := make(map[string]int)
	monthlyCounts := make(map[string]int)
	buyerOrderCounts := make(map[string]int)

	var totalSales float64
	var minTotal, maxTotal float64
	for i, order := range orders {
		total := orderTotal(order)
		totalSales += total
		if i == 0 {
			minTotal, maxTotal = total, total
		} else {
			minTotal = math.Min(minTotal, total)
			maxTotal = math.Max(maxTotal, total)
		}

		city := order.BuyerCity
		if city == "" {
			city = order.Buyer.City
		}
		if city == "" {
			city = "Unknown"
		}
		state := order.BuyerState
		if state == "" {
			state = order.Buyer.State
		}
		region := city + ", " + state
		if rs := regionStats[region]; rs != nil {
			rs.Orders++
			rs.Sales += total
		} else {
			regionStats[region] = &RegionStat{Region: region, Orders: 1, Sales: total}
		}

		for _, item := range order.Items {
			itemTotal := float64(item.UnitPrice) * float64(item.Quantity)
			if ps := productStats[item.Product.Name]; ps != nil {
				ps.Sales += itemTotal
				ps.Orders += item.Quantity
			} else {
				productStats[item.Product.Name] = &ProductStat{
					Name:   item.Product.Name,
					Sales:  itemTotal,
					Orders: item.Quantity,
				}
			}
			categoryCounts[ClassifyCategory(item.Product.Name)] += item.Quantity
		}

		monthlyCounts[monthNames[order.CreatedAt.Month()-1]]++
		buyerOrderCounts[order.BuyerID]++
	}

	for _, rs := range regionStats {
		insights.TopRegions = append(insights.TopRegions, *rs)
	}
	sort.SliceStable(insights.TopRegions, func(i, j int) bool {
		return insights.TopRegions[i].Sales > insights.TopRegions[j].Sales
	})
	if len(insights.TopRegions) > 5 {
		insights.TopRegions = insights.TopRegions[:5]
	}

	for _, ps := range productStats {
		insights.TopProducts = append(insights.TopProducts, *ps)
	}
	sort.SliceStable(insights.TopProducts, func(i, j int) bool {
		return insights.TopProducts[i].Sales > insights.TopProducts[j].Sales
	})
	if len(insights.TopProducts) > 5 {
		insights.TopProducts = insights.TopProducts[:5]
	}

	for category, count := range categoryCounts {
		insights.BuyerPreferences.PopularCategories = append(
			insights.BuyerPreferences.PopularCategories,
			CategoryStat{Category: category, Count: count},
		)
	}
	sort.SliceStable(insights.BuyerPreferences.PopularCategories, func(i, j int) bool {
		a, b := insights.BuyerPreferences.PopularCategories[i], insights.BuyerPreferences.PopularCategories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	if len(insights.BuyerPreferences.PopularCategories) > 4 {
		insights.BuyerPreferences.PopularCategories = insights.BuyerPreferences.PopularCategories[:4]
	}

	for _, m := range monthNames {
		if count, ok := monthlyCounts[m]; ok {
			insights.BuyerPreferences.SeasonalTrends = append(
				insights.BuyerPreferences.SeasonalTrends,
				SeasonalPoint{Month: m, Orders: count},
			)
		}
	}

	insights.BuyerPreferences.PriceRange = PriceRange{
		Min: minTotal,
		Max: maxTotal,
		Avg: math.Round(totalSales / float64(len(orders))),
	}

	insights.TotalCustomers = len(buyerOrderCounts)
	for _, count := range buyerOrderCounts {
		if count > 1 {
			insights.RepeatCustomers++
		}
	}
	insights.AverageOrderValue = math.Round(totalSales / float64(len(orders)))

	return insights
}

// CustomerInsightsHandler serves GET /insights/customers: a 6-month window
// of the session artisan's completed orders, aggregated.
func CustomerInsightsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)
		startDate := time.Now().AddDate(0, -6, 0)

		var orders []models.Order
		if err := db.
			Where("artisan_id = ? AND status = ? AND created_at >= ?", artisanID, models.OrderStatusCompleted, startDate).
			Preload("Buyer").
			Preload("Items").
			Preload("Items.Product").
			Find(&orders).Error; err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("insights: customer order load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate insights"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "insights": ComputeCustomerInsights(orders)})
	}
}
