package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

type fixture struct {
	owner    *domain.User
	customer *domain.User
	hotel    *domain.Hotel
	room     *domain.Room
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(db)

	owner := &domain.User{Email: "owner@example.com", PasswordHash: "x", Role: domain.RoleHotelOwner, Name: "Owner"}
	require.NoError(t, users.Create(ctx, owner))
	customer := &domain.User{Email: "guest@example.com", PasswordHash: "x", Role: domain.RoleCustomer, Name: "Guest"}
	require.NoError(t, users.Create(ctx, customer))

	hotel := &domain.Hotel{OwnerID: owner.ID, Name: "Seaside", City: "Lisbon", IsActive: true}
	require.NoError(t, NewHotelRepository(db).Create(ctx, hotel))

	room := &domain.Room{
		HotelID:       hotel.ID,
		Number:        "101",
		RoomType:      domain.RoomDouble,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(120),
		Currency:      domain.DefaultCurrency,
		IsActive:      true,
	}
	require.NoError(t, NewRoomRepository(db).Create(ctx, room))

	return fixture{owner: owner, customer: customer, hotel: hotel, room: room}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPendingBooking(f fixture, in, out time.Time) *domain.Booking {
	return &domain.Booking{
		ReferenceCode: uuid.NewString(),
		CustomerID:    f.customer.ID,
		HotelID:       f.hotel.ID,
		RoomID:        f.room.ID,
		CheckInDate:   in,
		CheckOutDate:  out,
		Adults:        2,
		Subtotal:      decimal.NewFromInt(240),
		Taxes:         decimal.Zero,
		Discount:      decimal.Zero,
		TotalAmount:   decimal.NewFromInt(240),
		Currency:      domain.DefaultCurrency,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
}
