package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint  `gorm:"not null;index" json:"shopId"`
	Shop   *Shop `json:"shop,omitempty"`

	CustomerID string `gorm:"type:text;not null;index" json:"customerId"`
	Customer   *User  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ServiceID *uint    `json:"serviceId"`
	Service   *Service `json:"service,omitempty"`

	// Date is a calendar day; TimeSlot is HH:MM in the shop's timezone.
	Date     time.Time `gorm:"type:date;not null" json:"date"`
	TimeSlot string    `gorm:"size:5;not null" json:"timeSlot"`

	Status string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
