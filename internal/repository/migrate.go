package repository

import (
	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

// AutoMigrate brings the schema up to date with the domain and storage models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Hotel{},
		&domain.Room{},
		&bookingModel{},
		&domain.BookingStatusEvent{},
		&domain.Refund{},
		&domain.Review{},
	)
}
