package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund is the ledger row written when a flagged refund is executed.
type Refund struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	BookingID   int64           `json:"booking_id" gorm:"not null;uniqueIndex"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Currency    string          `json:"currency" gorm:"size:3;not null"`
	Reason      string          `json:"reason,omitempty" gorm:"type:text"`
	ProcessedAt time.Time       `json:"processed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
