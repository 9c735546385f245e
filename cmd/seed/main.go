package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/cache"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/logger"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("DB connection failed: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}

	logrus.Info("Cleaning old data...")
	for _, table := range []string{"refunds", "booking_status_events", "reviews", "bookings", "rooms", "hotels", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			logrus.Fatalf("cleanup %s: %v", table, err)
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	rooms := repository.NewRoomRepository(db)
	reviews := repository.NewReviewRepository(db)

	mustUser := func(email, password, name string, role domain.UserRole) *domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Fatal(err)
		}
		u := &domain.User{Email: email, PasswordHash: string(hash), Name: name, Role: role}
		if err := users.Create(ctx, u); err != nil {
			logrus.Fatalf("create user %s: %v", email, err)
		}
		logrus.Infof("user %s / %s (%s)", email, password, role)
		return u
	}

	admin := mustUser("admin@hotelbooking.local", "admin123", "Admin", domain.RoleAdmin)
	owners := []*domain.User{
		mustUser("marta@harbourview.local", "owner123", "Marta Silva", domain.RoleHotelOwner),
		mustUser("jonas@alpinelodge.local", "owner123", "Jonas Berg", domain.RoleHotelOwner),
	}
	customers := []*domain.User{
		mustUser("ana@example.com", "guest123", "Ana Costa", domain.RoleCustomer),
		mustUser("li@example.com", "guest123", "Li Wei", domain.RoleCustomer),
		mustUser("sam@example.com", "guest123", "Sam Okafor", domain.RoleCustomer),
	}

	type roomSpec struct {
		number   string
		kind     domain.RoomType
		capacity int
		price    string
	}
	hotelSpecs := []struct {
		owner *domain.User
		name  string
		city  string
		stars int
		rooms []roomSpec
	}{
		{owners[0], "Harbour View", "Porto", 4, []roomSpec{
			{"101", domain.RoomSingle, 1, "75.00"},
			{"102", domain.RoomDouble, 2, "110.00"},
			{"301", domain.RoomSuite, 4, "240.00"},
		}},
		{owners[1], "Alpine Lodge", "Innsbruck", 3, []roomSpec{
			{"A1", domain.RoomDouble, 2, "95.00"},
			{"A2", domain.RoomFamily, 5, "180.00"},
		}},
	}

	var allRooms []domain.Room
	for _, hs := range hotelSpecs {
		h := &domain.Hotel{
			OwnerID:  hs.owner.ID,
			Name:     hs.name,
			Address:  fmt.Sprintf("%s centre", hs.city),
			City:     hs.city,
			Stars:    hs.stars,
			IsActive: true,
		}
		if err := hotels.Create(ctx, h); err != nil {
			logrus.Fatalf("create hotel: %v", err)
		}
		for _, rs := range hs.rooms {
			r := &domain.Room{
				HotelID:       h.ID,
				Number:        rs.number,
				RoomType:      rs.kind,
				Capacity:      rs.capacity,
				PricePerNight: decimal.RequireFromString(rs.price),
				Currency:      cfg.Currency,
				IsActive:      true,
			}
			if err := rooms.Create(ctx, r); err != nil {
				logrus.Fatalf("create room: %v", err)
			}
			allRooms = append(allRooms, *r)
		}
		if err := reviews.Create(ctx, &domain.Review{
			HotelID: h.ID,
			UserID:  customers[0].ID,
			Rating:  5,
			Comment: "Great stay, friendly staff.",
		}); err != nil {
			logrus.Fatalf("create review: %v", err)
		}
	}

	svc := booking.NewService(
		repository.NewBookingRepository(db),
		rooms,
		hotels,
		cache.Noop{},
		notification.Nop{},
		booking.Pricing{TaxRate: cfg.TaxRate, Currency: cfg.Currency},
	)

	actor := lifecycle.Actor{UserID: admin.ID, Role: domain.RoleAdmin}
	reason := "guest changed travel plans"
	plans := []struct {
		room     int
		customer int
		in, out  string
		then     []domain.BookingStatus
	}{
		{0, 0, "2030-03-02", "2030-03-05", nil},
		{1, 1, "2030-03-02", "2030-03-04", []domain.BookingStatus{domain.BookingConfirmed}},
		{2, 2, "2030-04-10", "2030-04-14", []domain.BookingStatus{domain.BookingCancelled}},
		{3, 0, "2030-05-01", "2030-05-08", []domain.BookingStatus{domain.BookingConfirmed}},
		{4, 1, "2030-06-20", "2030-06-27", []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCancelled}},
	}

	for _, p := range plans {
		b, err := svc.CreateBooking(ctx, actor, booking.CreateBookingRequest{
			RoomID:       allRooms[p.room].ID,
			CheckInDate:  p.in,
			CheckOutDate: p.out,
			Adults:       1,
			CustomerID:   customers[p.customer].ID,
		})
		if err != nil {
			logrus.Fatalf("create booking: %v", err)
		}
		for _, target := range p.then {
			var r *string
			if target == domain.BookingCancelled {
				r = &reason
			}
			if _, err := svc.TransitionBooking(ctx, actor, b.ID, target, r); err != nil {
				logrus.Fatalf("transition booking %d to %s: %v", b.ID, target, err)
			}
		}
		logrus.Infof("booking %s %s..%s", b.ReferenceCode, p.in, p.out)
	}

	logrus.Info("Seed completed")
}
