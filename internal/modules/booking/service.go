package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

type Pricing struct {
	TaxRate  decimal.Decimal
	Currency string
}

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	hotels   HotelRepository
	stats    StatsCache
	notifier notification.Notifier
	pricing  Pricing
	clock    func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	hotels HotelRepository,
	stats StatsCache,
	notifier notification.Notifier,
	pricing Pricing,
) *Service {
	if pricing.Currency == "" {
		pricing.Currency = domain.DefaultCurrency
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		hotels:   hotels,
		stats:    stats,
		notifier: notifier,
		pricing:  pricing,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source; used by tests and the sweeper.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

func (s *Service) CreateBooking(ctx context.Context, actor lifecycle.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	customerID := actor.UserID
	switch actor.Role {
	case domain.RoleCustomer:
	case domain.RoleAdmin:
		if req.CustomerID > 0 {
			customerID = req.CustomerID
		}
	default:
		return nil, ErrForbidden
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in_date: %v", ErrValidation, err)
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out_date: %v", ErrValidation, err)
	}

	ts := s.clock()
	if checkIn.Before(now.With(ts).BeginningOfDay()) {
		return nil, fmt.Errorf("%w: check-in date is in the past", ErrValidation)
	}
	if req.Adults < 1 || req.Children < 0 {
		return nil, fmt.Errorf("%w: at least one adult is required", ErrValidation)
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	if req.Adults+req.Children > room.Capacity {
		return nil, ErrCapacity
	}

	quote, err := lifecycle.QuoteStay(room.PricePerNight, checkIn, checkOut, s.pricing.TaxRate, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	currency := room.Currency
	if currency == "" {
		currency = s.pricing.Currency
	}

	b := &domain.Booking{
		ReferenceCode:   uuid.NewString(),
		CustomerID:      customerID,
		HotelID:         room.HotelID,
		RoomID:          room.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Adults:          req.Adults,
		Children:        req.Children,
		Subtotal:        quote.Subtotal,
		Taxes:           quote.Taxes,
		Discount:        quote.Discount,
		TotalAmount:     quote.Total,
		Currency:        currency,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := lifecycle.ValidateBooking(*b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ev := &domain.BookingStatusEvent{
		ToStatus:      b.Status,
		PaymentStatus: b.PaymentStatus,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		CreatedAt:     ts,
	}
	if err := s.bookings.CreateIfAvailable(ctx, b, ev); err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	s.afterChange(ctx, notification.NewEvent(notification.TypeBookingCreated, *b, "", actor.UserID, actor.Role, nil))
	return b, nil
}

// Quote prices a stay in a room and reports whether the dates are free.
func (s *Service) Quote(ctx context.Context, roomID int64, checkInStr, checkOutStr string) (*QuoteResponse, error) {
	checkIn, err := parseDate(checkInStr)
	if err != nil {
		return nil, fmt.Errorf("%w: check_in: %v", ErrValidation, err)
	}
	checkOut, err := parseDate(checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("%w: check_out: %v", ErrValidation, err)
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	quote, err := lifecycle.QuoteStay(room.PricePerNight, checkIn, checkOut, s.pricing.TaxRate, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	available, err := s.bookings.CheckAvailability(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	currency := room.Currency
	if currency == "" {
		currency = s.pricing.Currency
	}
	return &QuoteResponse{
		RoomID:       roomID,
		CheckInDate:  checkInStr,
		CheckOutDate: checkOutStr,
		Currency:     currency,
		Available:    available && room.IsActive,
		Quote:        quote,
	}, nil
}

func (s *Service) GetBooking(ctx context.Context, actor lifecycle.Actor, id int64) (*BookingView, error) {
	b, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.view(*b, actor), nil
}

func (s *Service) ListBookings(ctx context.Context, actor lifecycle.Actor, q ListQuery) ([]domain.Booking, int64, repository.Pagination, error) {
	f, err := s.scopeFilter(actor, q.HotelID)
	if err != nil {
		return nil, 0, repository.Pagination{}, err
	}

	if q.Status != "" {
		for _, raw := range strings.Split(q.Status, ",") {
			st, err := lifecycle.ParseStatus(strings.TrimSpace(raw))
			if err != nil {
				return nil, 0, repository.Pagination{}, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	if q.PaymentStatus != "" {
		ps, err := lifecycle.ParsePaymentStatus(q.PaymentStatus)
		if err != nil {
			return nil, 0, repository.Pagination{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		f.PaymentStatus = ps
	}
	f.Reference = q.Reference

	page := repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize()
	items, total, err := s.bookings.Query(ctx, f, page)
	if err != nil {
		return nil, 0, repository.Pagination{}, err
	}
	return items, total, page, nil
}

// TransitionBooking loads the booking, applies the lifecycle rules and saves the result
// only if nobody changed the booking in between. A lost race surfaces as repository.ErrConflict.
func (s *Service) TransitionBooking(ctx context.Context, actor lifecycle.Actor, id int64, target domain.BookingStatus, reason *string) (*BookingView, error) {
	current, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	ts := s.clock()
	next, err := lifecycle.ApplyStatusTransition(*current, target, actor, reason, ts)
	if err != nil {
		return nil, err
	}

	ev := &domain.BookingStatusEvent{
		FromStatus:    current.Status,
		ToStatus:      next.Status,
		PaymentStatus: next.PaymentStatus,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		Reason:        reason,
		CreatedAt:     ts,
	}
	if err := s.bookings.SaveWithEvent(ctx, &next, ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": next.ID,
		"from":       current.Status,
		"to":         next.Status,
		"actor_id":   actor.UserID,
		"actor_role": actor.Role,
	}).Info("booking status changed")

	s.afterChange(ctx, notification.NewEvent(notification.TypeBookingStatusChanged, next, current.Status, actor.UserID, actor.Role, reason))
	return s.view(next, actor), nil
}

func (s *Service) GetProgress(ctx context.Context, actor lifecycle.Actor, id int64) ([]lifecycle.ProgressStep, error) {
	b, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return lifecycle.DeriveProgressSteps(*b, s.clock()), nil
}

func (s *Service) GetHistory(ctx context.Context, actor lifecycle.Actor, id int64) ([]domain.BookingStatusEvent, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.bookings.History(ctx, id)
}

// GetStatistics aggregates every booking visible to actor. Results are cached until the next change.
func (s *Service) GetStatistics(ctx context.Context, actor lifecycle.Actor, q StatsQuery) (lifecycle.Statistics, error) {
	f, err := s.scopeFilter(actor, q.HotelID)
	if err != nil {
		return lifecycle.Statistics{}, err
	}
	if q.From != "" {
		from, err := parseDate(q.From)
		if err != nil {
			return lifecycle.Statistics{}, fmt.Errorf("%w: from: %v", ErrValidation, err)
		}
		f.CheckInFrom = &from
	}
	if q.To != "" {
		to, err := parseDate(q.To)
		if err != nil {
			return lifecycle.Statistics{}, fmt.Errorf("%w: to: %v", ErrValidation, err)
		}
		to = to.AddDate(0, 0, 1)
		f.CheckInTo = &to
	}

	scope := statsScope(actor, q)
	cached, gen, ok, cacheErr := s.stats.Get(ctx, scope)
	if cacheErr != nil {
		logrus.WithError(cacheErr).WithField("scope", scope).Warn("stats cache read failed")
	} else if ok {
		return cached, nil
	}

	all, err := s.bookings.ListAll(ctx, f)
	if err != nil {
		return lifecycle.Statistics{}, err
	}
	st := lifecycle.ComputeStatistics(all)

	if cacheErr == nil {
		if err := s.stats.Set(ctx, scope, gen, st); err != nil {
			logrus.WithError(err).WithField("scope", scope).Warn("stats cache write failed")
		}
	}
	return st, nil
}

func statsScope(actor lifecycle.Actor, q StatsQuery) string {
	who := "all"
	if actor.Role != domain.RoleAdmin {
		who = fmt.Sprintf("%s:%d", actor.Role, actor.UserID)
	}
	return fmt.Sprintf("%s|hotel=%d|from=%s|to=%s", who, q.HotelID, q.From, q.To)
}

// scopeFilter restricts queries to what actor may see.
func (s *Service) scopeFilter(actor lifecycle.Actor, hotelID int64) (repository.BookingFilter, error) {
	var f repository.BookingFilter
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleHotelOwner:
		ownerID := actor.UserID
		f.OwnerID = &ownerID
	case domain.RoleCustomer:
		customerID := actor.UserID
		f.CustomerID = &customerID
	default:
		return f, ErrForbidden
	}
	if hotelID > 0 {
		f.HotelID = &hotelID
	}
	return f, nil
}

// load fetches a booking and checks that actor may see it.
func (s *Service) load(ctx context.Context, actor lifecycle.Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return b, nil
	case domain.RoleCustomer:
		if b.CustomerID == actor.UserID {
			return b, nil
		}
	case domain.RoleHotelOwner:
		ok, err := s.hotels.IsOwner(ctx, b.HotelID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if ok {
			return b, nil
		}
	}
	return nil, ErrForbidden
}

func (s *Service) view(b domain.Booking, actor lifecycle.Actor) *BookingView {
	return &BookingView{
		Booking:            b,
		AllowedTransitions: lifecycle.AllowedTargets(b, actor.Role, s.clock()),
	}
}

// afterChange drops cached statistics and notifies subscribers. Failures are logged only.
func (s *Service) afterChange(ctx context.Context, ev notification.Event) {
	if err := s.stats.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("stats cache invalidation failed")
	}
	if err := s.notifier.BookingChanged(ctx, ev); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"booking_id": ev.BookingID,
			"event":      ev.Type,
		}).Warn("booking notification failed")
	}
}
