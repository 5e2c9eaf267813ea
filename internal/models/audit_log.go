package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID *uint   `json:"shopId"`
	UserID *string `gorm:"type:text" json:"userId"`
	Action string  `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entityId"`
	Metadata string `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
