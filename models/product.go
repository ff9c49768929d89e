package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ArtisanID   string `gorm:"index;not null" json:"artisan_id"`
	Artisan     User   `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // paise
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	ImageURL    string `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
