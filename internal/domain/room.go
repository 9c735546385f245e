package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomFamily RoomType = "family"
)

type Room struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	HotelID       int64           `json:"hotel_id" gorm:"not null;index"`
	Number        string          `json:"number" gorm:"size:20;not null" validate:"required"`
	RoomType      RoomType        `json:"room_type" gorm:"size:20" validate:"required"`
	Capacity      int             `json:"capacity" validate:"required,gt=0"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:numeric(12,2);not null"`
	Currency      string          `json:"currency" gorm:"size:3;not null;default:USD"`
	IsActive      bool            `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
