package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review. A second review for the same booking yields ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// List returns reviews newest first. hidden=nil returns both visible and hidden rows.
func (r *ReviewRepository) List(ctx context.Context, hotelID *int64, hidden *bool, p Pagination) ([]domain.Review, int64, error) {
	p = p.Normalize()
	db := r.db.WithContext(ctx)

	filter := func(q *gorm.DB) *gorm.DB {
		if hotelID != nil {
			q = q.Where("hotel_id = ?", *hotelID)
		}
		if hidden != nil {
			q = q.Where("is_hidden = ?", *hidden)
		}
		return q
	}

	var total int64
	if err := filter(db.Model(&domain.Review{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	err := filter(db.Model(&domain.Review{})).
		Order("created_at DESC").
		Order("id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_hidden": hidden, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
