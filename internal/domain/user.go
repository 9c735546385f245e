package domain

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleHotelOwner UserRole = "hotel_owner"
	RoleCustomer   UserRole = "customer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleHotelOwner, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;index"`
	Name         string    `json:"name" gorm:"size:255"`
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	IsBlocked    bool      `json:"is_blocked" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
