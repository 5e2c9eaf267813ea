package models

import "time"

// User.ID is the identity provider subject.
type User struct {
	ID           string `gorm:"primaryKey;type:text" json:"id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:32" json:"phone"`
	Role         string `gorm:"size:20;not null;default:'customer'" json:"role"`
	FirstName    string `gorm:"size:100" json:"firstName"`
	LastName     string `gorm:"size:100" json:"lastName"`
	PasswordHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
