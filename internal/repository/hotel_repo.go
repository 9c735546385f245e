package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

type HotelFilters struct {
	City    string
	OwnerID *int64
	Limit   int
	Offset  int
}

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// GetAll returns active hotels with their active rooms.
func (r *HotelRepository) GetAll(ctx context.Context, f HotelFilters) ([]domain.Hotel, int64, error) {
	db := r.db.WithContext(ctx)

	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("is_active = ?", true)
		if c := strings.TrimSpace(f.City); c != "" {
			q = q.Where("LOWER(city) = ?", strings.ToLower(c))
		}
		if f.OwnerID != nil {
			q = q.Where("owner_id = ?", *f.OwnerID)
		}
		return q
	}

	var total int64
	if err := filter(db.Model(&domain.Hotel{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	var hotels []domain.Hotel
	err := filter(db.Model(&domain.Hotel{})).
		Preload("Rooms", "is_active = ?", true).
		Order("id").
		Limit(limit).
		Offset(f.Offset).
		Find(&hotels).Error

	return hotels, total, err
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var hotel domain.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", "is_active = ?", true).
		First(&hotel, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &hotel, nil
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// IsOwner reports whether hotelID belongs to ownerID.
func (r *HotelRepository) IsOwner(ctx context.Context, hotelID, ownerID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("id = ? AND owner_id = ?", hotelID, ownerID).
		Count(&n).Error
	return n > 0, err
}

func (r *HotelRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).Count(&n).Error
	return n, err
}

// IDsByOwner lists the hotels that belong to ownerID.
func (r *HotelRepository) IDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("owner_id = ?", ownerID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
