package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dish is a menu item belonging to exactly one restaurant.
type Dish struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"size:60;not null"`
	Category     string          `json:"category" gorm:"size:40;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;index"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Restaurant Restaurant `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// DishChanges holds the mutable fields of a dish. The owning restaurant never changes.
type DishChanges struct {
	Name     string
	Category string
	Price    decimal.Decimal
}
