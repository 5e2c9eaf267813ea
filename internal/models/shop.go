package models

import "time"

type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID string `gorm:"type:text;not null;index" json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"size:255" json:"address"`
	Phone       string `gorm:"size:32" json:"phone"`
	Timezone    string `gorm:"size:64" json:"timezone"`
	ImageURL    string `gorm:"size:512" json:"imageUrl"`

	Employees []User    `gorm:"many2many:shop_employees;" json:"employees,omitempty"`
	Services  []Service `gorm:"foreignKey:ShopID" json:"services,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
