package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting fulfilment
	OrderStatusCompleted OrderStatus = "completed" // fulfilled by the artisan
)

type Order struct {
	ID        string `gorm:"primaryKey" json:"id"`
	BuyerID   string `gorm:"index;not null" json:"buyer_id"`
	Buyer     User   `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	ArtisanID string `gorm:"index;not null" json:"artisan_id"`
	Artisan   User   `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`

	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalAmount int64       `json:"total_amount"` // paise
	Address     string      `gorm:"not null" json:"address"`

	// Buyer location captured at placement; never re-derived from the user
	// row afterwards.
	BuyerCity  string `json:"buyer_city,omitempty"`
	BuyerState string `json:"buyer_state,omitempty"`

	// IdempotencyKey dedupes double-submits; a replayed key returns the
	// original order instead of creating a new one.
	IdempotencyKey *string `gorm:"uniqueIndex" json:"-"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"index" json:"order_id"`
	ProductID string  `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice int64   `gorm:"not null" json:"unit_price"` // paise, price at order time
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
