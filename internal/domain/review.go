package domain

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	HotelID   int64     `json:"hotel_id" gorm:"not null;index"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	BookingID *int64    `json:"booking_id,omitempty" gorm:"uniqueIndex"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	IsHidden  bool      `json:"is_hidden" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
