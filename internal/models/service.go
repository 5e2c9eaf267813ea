package models

import "time"

// Service with a nil ShopID is a global catalog entry.
type Service struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ShopID *uint `gorm:"index" json:"shopId"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Duration    int     `gorm:"not null;default:30" json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
