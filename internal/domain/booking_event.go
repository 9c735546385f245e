package domain

import "time"

// BookingStatusEvent is one row of a booking's status history.
type BookingStatusEvent struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	BookingID     int64         `json:"booking_id" gorm:"not null;index"`
	FromStatus    BookingStatus `json:"from_status" gorm:"size:20"`
	ToStatus      BookingStatus `json:"to_status" gorm:"size:20;not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"size:20"`
	ActorID       int64         `json:"actor_id"`
	ActorRole     UserRole      `json:"actor_role" gorm:"size:20"`
	Reason        *string       `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
