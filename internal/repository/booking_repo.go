package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReferenceCode string    `gorm:"column:reference_code;size:36;uniqueIndex"`
	CustomerID    int64     `gorm:"column:customer_id;not null;index"`
	HotelID       int64     `gorm:"column:hotel_id;not null;index"`
	RoomID        int64     `gorm:"column:room_id;not null;index:idx_bookings_room_dates,priority:1"`
	CheckInDate   time.Time `gorm:"column:check_in_date;not null;index:idx_bookings_room_dates,priority:2"`
	CheckOutDate  time.Time `gorm:"column:check_out_date;not null;index:idx_bookings_room_dates,priority:3"`
	Adults        int       `gorm:"column:adults;not null;default:1"`
	Children      int       `gorm:"column:children;not null;default:0"`

	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Taxes       decimal.Decimal `gorm:"column:taxes;type:numeric(12,2);not null"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Currency    string          `gorm:"column:currency;size:3;not null"`

	Status             string  `gorm:"column:status;size:20;not null;index"`
	PaymentStatus      string  `gorm:"column:payment_status;size:20;not null;index"`
	CancellationReason *string `gorm:"column:cancellation_reason;type:text"`
	SpecialRequests    *string `gorm:"column:special_requests;type:text"`

	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	ConfirmedAt  *time.Time `gorm:"column:confirmed_at"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
	CheckedInAt  *time.Time `gorm:"column:checked_in_at"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at"`
	NoShowAt     *time.Time `gorm:"column:no_show_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	PaidAt       *time.Time `gorm:"column:paid_at"`

	Version int64 `gorm:"column:version;not null;default:1"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var requests string
	if m.SpecialRequests != nil {
		requests = *m.SpecialRequests
	}

	return &domain.Booking{
		ID:                 m.ID,
		ReferenceCode:      m.ReferenceCode,
		CustomerID:         m.CustomerID,
		HotelID:            m.HotelID,
		RoomID:             m.RoomID,
		CheckInDate:        m.CheckInDate,
		CheckOutDate:       m.CheckOutDate,
		Adults:             m.Adults,
		Children:           m.Children,
		Subtotal:           m.Subtotal,
		Taxes:              m.Taxes,
		Discount:           m.Discount,
		TotalAmount:        m.TotalAmount,
		Currency:           m.Currency,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		CancellationReason: m.CancellationReason,
		SpecialRequests:    requests,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CheckedInAt:        m.CheckedInAt,
		CheckedOutAt:       m.CheckedOutAt,
		NoShowAt:           m.NoShowAt,
		CompletedAt:        m.CompletedAt,
		PaidAt:             m.PaidAt,
		Version:            m.Version,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var requests *string
	if b.SpecialRequests != "" {
		v := b.SpecialRequests
		requests = &v
	}

	return bookingModel{
		ID:                 b.ID,
		ReferenceCode:      b.ReferenceCode,
		CustomerID:         b.CustomerID,
		HotelID:            b.HotelID,
		RoomID:             b.RoomID,
		CheckInDate:        b.CheckInDate,
		CheckOutDate:       b.CheckOutDate,
		Adults:             b.Adults,
		Children:           b.Children,
		Subtotal:           b.Subtotal,
		Taxes:              b.Taxes,
		Discount:           b.Discount,
		TotalAmount:        b.TotalAmount,
		Currency:           b.Currency,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: b.CancellationReason,
		SpecialRequests:    requests,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CheckedInAt:        b.CheckedInAt,
		CheckedOutAt:       b.CheckedOutAt,
		NoShowAt:           b.NoShowAt,
		CompletedAt:        b.CompletedAt,
		PaidAt:             b.PaidAt,
		Version:            b.Version,
	}
}

// BookingFilter narrows QueryBookings. Nil and empty fields are ignored.
type BookingFilter struct {
	Statuses      []domain.BookingStatus
	PaymentStatus domain.PaymentStatus
	CustomerID    *int64
	HotelID       *int64
	OwnerID       *int64
	RoomID        *int64
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	Reference     string
}

func holdingStatuses() []string {
	out := make([]string, 0, 3)
	for _, s := range lifecycle.AllStatuses() {
		if lifecycle.HoldsRoom(s) {
			out = append(out, string(s))
		}
	}
	return out
}

func applyBookingFilter(q *gorm.DB, f BookingFilter) *gorm.DB {
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", string(f.PaymentStatus))
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.HotelID != nil {
		q = q.Where("hotel_id = ?", *f.HotelID)
	}
	if f.OwnerID != nil {
		q = q.Where("hotel_id IN (SELECT id FROM hotels WHERE owner_id = ?)", *f.OwnerID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.CheckInFrom != nil {
		q = q.Where("check_in_date >= ?", *f.CheckInFrom)
	}
	if f.CheckInTo != nil {
		q = q.Where("check_in_date < ?", *f.CheckInTo)
	}
	if ref := strings.TrimSpace(f.Reference); ref != "" {
		q = q.Where("LOWER(reference_code) LIKE ?", "%"+strings.ToLower(ref)+"%")
	}
	return q
}

// CreateIfAvailable inserts b as version 1 unless another room-holding booking overlaps its dates,
// and records ev (when not nil) as its first history row.
// On PostgreSQL the room row is locked for the duration of the check.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			var locked int64
			if err := tx.Raw("SELECT id FROM rooms WHERE id = ? FOR UPDATE", b.RoomID).Scan(&locked).Error; err != nil {
				return err
			}
		}

		free, err := checkAvailability(tx, b.RoomID, b.CheckInDate, b.CheckOutDate)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		m := toBookingModel(b)
		m.Version = 1
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		if ev != nil {
			ev.BookingID = m.ID
			if err := tx.Create(ev).Error; err != nil {
				return err
			}
		}
		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *BookingRepository) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	return checkAvailability(r.db.WithContext(ctx), roomID, checkIn, checkOut)
}

func checkAvailability(db *gorm.DB, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	var cnt int64
	err := db.Model(&bookingModel{}).
		Where("room_id = ? AND status IN ?", roomID, holdingStatuses()).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// GetByID loads one booking; ErrNotFound when absent.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

// Save writes the mutable lifecycle columns of b if nobody saved it since it was loaded.
// A stale b.Version yields ErrConflict; on success b.Version is advanced.
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return saveBooking(r.db.WithContext(ctx), b)
}

// SaveWithEvent saves b and appends ev to its history in one transaction.
func (r *BookingRepository) SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	version := b.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveBooking(tx, b); err != nil {
			return err
		}
		ev.BookingID = b.ID
		return tx.Create(ev).Error
	})
	if err != nil {
		b.Version = version
	}
	return err
}

func saveBooking(tx *gorm.DB, b *domain.Booking) error {
	m := toBookingModel(b)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}

	res := tx.Model(&bookingModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"status":              m.Status,
			"payment_status":      m.PaymentStatus,
			"cancellation_reason": m.CancellationReason,
			"special_requests":    m.SpecialRequests,
			"confirmed_at":        m.ConfirmedAt,
			"cancelled_at":        m.CancelledAt,
			"checked_in_at":       m.CheckedInAt,
			"checked_out_at":      m.CheckedOutAt,
			"no_show_at":          m.NoShowAt,
			"completed_at":        m.CompletedAt,
			"paid_at":             m.PaidAt,
			"updated_at":          m.UpdatedAt,
			"version":             gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := tx.Model(&bookingModel{}).Where("id = ?", b.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}

	b.Version++
	b.UpdatedAt = m.UpdatedAt
	return nil
}

// Query returns one page of bookings matching f, newest first, and the total match count.
func (r *BookingRepository) Query(ctx context.Context, f BookingFilter, p Pagination) ([]domain.Booking, int64, error) {
	p = p.Normalize()
	db := r.db.WithContext(ctx)

	var total int64
	if err := applyBookingFilter(db.Model(&bookingModel{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := applyBookingFilter(db.Model(&bookingModel{}), f).
		Order("created_at DESC").
		Order("id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toDomainBookings(rows), total, nil
}

// ListAll returns every booking matching f; used for aggregation.
func (r *BookingRepository) ListAll(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := applyBookingFilter(r.db.WithContext(ctx).Model(&bookingModel{}), f).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// ListDueNoShow returns confirmed bookings whose check-in date is before cutoff.
func (r *BookingRepository) ListDueNoShow(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND check_in_date < ? AND checked_in_at IS NULL", string(domain.BookingConfirmed), cutoff).
		Order("check_in_date").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) ListByPaymentStatus(ctx context.Context, ps domain.PaymentStatus, limit int) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("payment_status = ?", string(ps)).
		Order("updated_at").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) History(ctx context.Context, bookingID int64) ([]domain.BookingStatusEvent, error) {
	var events []domain.BookingStatusEvent
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at").
		Order("id").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *BookingRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&n).Error
	return n, err
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
