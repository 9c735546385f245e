package domain

import "time"

type Hotel struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OwnerID     int64     `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Address     string    `json:"address" gorm:"size:255"`
	City        string    `json:"city" gorm:"size:120;index"`
	Stars       int       `json:"stars"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}
