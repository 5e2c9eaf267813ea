package models

import "time"

// Review with a nil ShopID is platform feedback.
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	AuthorID string `gorm:"type:text;not null;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	ShopID *uint `gorm:"index" json:"shopId"`

	CreatedAt time.Time `json:"createdAt"`
}
