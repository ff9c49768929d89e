package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleArtisan Role = "artisan"
	RoleBuyer   Role = "buyer"
)

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Phone        string  `gorm:"uniqueIndex;not null" json:"phone"`
	Email        *string `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         Role    `gorm:"type:VARCHAR(10);not null" json:"role"`

	// Location, required for local discovery and copied onto orders as a
	// snapshot at placement time.
	City  string `gorm:"not null" json:"city"`
	State string `gorm:"not null" json:"state"`

	// Artisan profile fields, unused for buyers.
	Gender     string `json:"gender,omitempty"`
	Age        int    `json:"age,omitempty"`
	Address    string `json:"address,omitempty"`
	District   string `json:"district,omitempty"`
	Pincode    string `json:"pincode,omitempty"`
	CraftType  string `json:"craft_type,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Languages  string `json:"languages,omitempty"` // JSON-encoded string list

	IsVerified bool `gorm:"default:false" json:"is_verified"`
	IsActive   bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
