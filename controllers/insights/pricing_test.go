package insightsControllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftroots/artisan-api/models"
)

func TestClassifyDemand(t *testing.T) {
	tests := []struct {
		name   string
		last30 int
		last90 int
		want   DemandTrend
	}{
		{"burst of recent sales", 6, 9, TrendRising},
		{"recent rate high but too few units", 2, 3, TrendStable},
		{"sales dried up", 0, 9, TrendFalling},
		{"slowing but below falling floor", 0, 2, TrendStable},
		{"steady", 3, 9, TrendStable},
		{"no sales at all", 0, 0, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDemand(tt.last30, tt.last90))
		})
	}
}

func TestSuggestPriceRising(t *testing.T) {
	// Nudge up at least 5% over realized average, but never below current.
	suggested, _ := SuggestPrice(100, 100, TrendRising)
	assert.Equal(t, 105.0, suggested)

	// Current price already inside the band wins over the 5% floor.
	suggested, _ = SuggestPrice(100, 108, TrendRising)
	assert.Equal(t, 108.0, suggested)

	// Capped at 10% over average even when current is higher.
	suggested, _ = SuggestPrice(100, 150, TrendRising)
	assert.Equal(t, 110.0, suggested)
}

func TestSuggestPriceFalling(t *testing.T) {
	suggested, _ := SuggestPrice(100, 100, TrendFalling)
	assert.Equal(t, 95.0, suggested)

	// Never discount below 10% under the realized average.
	suggested, _ = SuggestPrice(100, 85, TrendFalling)
	assert.Equal(t, 90.0, suggested)
}

func TestSuggestPriceStableBlends(t *testing.T) {
	suggested, rationale := SuggestPrice(100, 80, TrendStable)
	assert.Equal(t, 92.0, suggested) // 0.6*100 + 0.4*80
	assert.NotEmpty(t, rationale)

	// Rounding to two decimal places.
	suggested, _ = SuggestPrice(99.99, 100.05, TrendStable)
	assert.Equal(t, 100.01, suggested)
}

func orderAt(created time.Time, buyerID string, items ...models.OrderItem) models.Order {
	return models.Order{
		BuyerID:   buyerID,
		Status:    models.OrderStatusCompleted,
		Items:     items,
		CreatedAt: created,
	}
}

func TestComputePricing(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "diya", Name: "Clay Diya", Price: 100},
		{ID: "lamp", Name: "Brass Lamp", Price: 500},
		{ID: "idle", Name: "Unsold Vase", Price: 300},
	}
	orders := []models.Order{
		// Recent diya sales, all inside the 30-day window.
		orderAt(now.AddDate(0, 0, -5), "b1", models.OrderItem{ProductID: "diya", Quantity: 3, UnitPrice: 100}),
		orderAt(now.AddDate(0, 0, -10), "b2", models.OrderItem{ProductID: "diya", Quantity: 2, UnitPrice: 110}),
		// One older lamp sale, outside 30 days but inside 90.
		orderAt(now.AddDate(0, 0, -60), "b1", models.OrderItem{ProductID: "lamp", Quantity: 1, UnitPrice: 500}),
	}

	pricing := ComputePricing(products, orders, now)
	require.Len(t, pricing, 3)

	// Sorted by revenue descending: diya 520 > lamp 500 > idle 0.
	assert.Equal(t, "diya", pricing[0].ProductID)
	assert.Equal(t, "lamp", pricing[1].ProductID)
	assert.Equal(t, "idle", pricing[2].ProductID)

	diya := pricing[0]
	assert.Equal(t, 5, diya.UnitsSold)
	assert.Equal(t, 520.0, diya.Revenue)
	assert.Equal(t, 100.0, diya.MinPaid)
	assert.Equal(t, 110.0, diya.MaxPaid)
	assert.Equal(t, 104.0, diya.AvgPaid) // (3*100 + 2*110) / 5
	assert.Equal(t, TrendRising, diya.DemandTrend)
	// Rising band: max(104*1.05, 100) capped at 104*1.1.
	assert.Equal(t, 109.2, diya.SuggestedPrice)

	// One lamp sold in 90 days is too little signal to call the trend falling.
	lamp := pricing[1]
	assert.Equal(t, TrendStable, lamp.DemandTrend)

	// No sales: current price carried through, stable.
	idle := pricing[2]
	assert.Equal(t, TrendStable, idle.DemandTrend)
	assert.Equal(t, 300.0, idle.AvgPaid)
	assert.Equal(t, 300.0, idle.SuggestedPrice)
	assert.Zero(t, idle.UnitsSold)
}

func TestComputePricingIgnoresForeignProducts(t *testing.T) {
	now := time.Now()
	products := []models.Product{{ID: "mine", Name: "Mine", Price: 100}}
	orders := []models.Order{
		orderAt(now.AddDate(0, 0, -1), "b1", models.OrderItem{ProductID: "other", Quantity: 5, UnitPrice: 50}),
	}

	pricing := ComputePricing(products, orders, now)
	require.Len(t, pricing, 1)
	assert.Zero(t, pricing[0].UnitsSold)
}

func TestSeasonalDemandCoversAllMonths(t *testing.T) {
	orders := []models.Order{
		orderAt(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "b1"),
		orderAt(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), "b1"),
		orderAt(time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), "b2"),
	}

	points := SeasonalDemand(orders)
	require.Len(t, points, 12)
	assert.Equal(t, SeasonalPoint{Month: "Jan", Orders: 2}, points[0])
	assert.Equal(t, SeasonalPoint{Month: "Oct", Orders: 1}, points[9])
	assert.Equal(t, SeasonalPoint{Month: "Dec", Orders: 0}, points[11])
}
