package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

type RefundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// Execute saves the refunded booking, records its status event and writes the ledger row atomically.
// A second refund for the same booking yields ErrDuplicate.
func (r *RefundRepository) Execute(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent, refund *domain.Refund) error {
	version := b.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveBooking(tx, b); err != nil {
			return err
		}
		ev.BookingID = b.ID
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		refund.BookingID = b.ID
		if err := tx.Create(refund).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		b.Version = version
	}
	return err
}

func (r *RefundRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Refund, error) {
	var refund domain.Refund
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&refund).Error; err != nil {
		return nil, notFound(err)
	}
	return &refund, nil
}

func (r *RefundRepository) List(ctx context.Context, p Pagination) ([]domain.Refund, int64, error) {
	p = p.Normalize()
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Refund{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var refunds []domain.Refund
	err := db.Order("processed_at DESC").
		Order("id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&refunds).Error
	return refunds, total, err
}
