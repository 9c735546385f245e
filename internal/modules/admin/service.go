package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jinzhu/now"
	"github.com/sirupsen/logrus"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/repository"
)

var (
	ErrInvalidRole = errors.New("invalid role filter")
	ErrSelfBlock   = errors.New("admins cannot block themselves")
)

type Service struct {
	users    UserRepository
	hotels   HotelCounter
	bookings BookingRepository
	reviews  ReviewRepository
	clock    func() time.Time
}

func NewService(users UserRepository, hotels HotelCounter, bookings BookingRepository, reviews ReviewRepository) *Service {
	return &Service{
		users:    users,
		hotels:   hotels,
		bookings: bookings,
		reviews:  reviews,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Dashboard summarises the platform. "Today" is the current UTC calendar day.
func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	var totalUsers int64
	for _, n := range byRole {
		totalUsers += n
	}

	hotels, err := s.hotels.Count(ctx)
	if err != nil {
		return nil, err
	}

	day := now.With(s.clock().UTC())
	today, err := s.bookings.CountCreatedBetween(ctx, day.BeginningOfDay(), day.EndOfDay())
	if err != nil {
		return nil, err
	}

	all, err := s.bookings.ListAll(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		UsersByRole:   byRole,
		TotalUsers:    totalUsers,
		TotalHotels:   hotels,
		BookingsToday: today,
		Bookings:      lifecycle.ComputeStatistics(all),
	}, nil
}

func (s *Service) ListUsers(ctx context.Context, f UserListFilter) ([]domain.User, int64, repository.Pagination, error) {
	p := repository.Pagination{Page: f.Page, Limit: f.Limit}.Normalize()

	role := domain.UserRole(f.Role)
	if role != "" && !role.Valid() {
		return nil, 0, p, ErrInvalidRole
	}

	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:    role,
		Search:  f.Query,
		Blocked: f.Blocked,
	}, p)
	return users, total, p, err
}

func (s *Service) SetUserBlocked(ctx context.Context, adminID, userID int64, blocked bool, reason string) error {
	if blocked && adminID == userID {
		return ErrSelfBlock
	}
	if err := s.users.SetBlocked(ctx, userID, blocked); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"admin_id": adminID,
		"user_id":  userID,
		"blocked":  blocked,
		"reason":   reason,
	}).Info("user block status changed")
	return nil
}

func (s *Service) ListReviews(ctx context.Context, f ReviewListFilter) ([]domain.Review, int64, repository.Pagination, error) {
	p := repository.Pagination{Page: f.Page, Limit: f.Limit}.Normalize()
	reviews, total, err := s.reviews.List(ctx, f.HotelID, f.Hidden, p)
	return reviews, total, p, err
}

func (s *Service) SetReviewHidden(ctx context.Context, reviewID int64, hidden bool) error {
	return s.reviews.SetHidden(ctx, reviewID, hidden)
}
