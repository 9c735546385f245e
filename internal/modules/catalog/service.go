package catalog

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/repository"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidPrice = errors.New("price per night must be positive")
	ErrNotFound     = errors.New("hotel not found")
)

type HotelStore interface {
	GetAll(ctx context.Context, f repository.HotelFilters) ([]domain.Hotel, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Create(ctx context.Context, hotel *domain.Hotel) error
}

type RoomStore interface {
	Create(ctx context.Context, room *domain.Room) error
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

type Service struct {
	hotels   HotelStore
	rooms    RoomStore
	currency string
}

func NewService(hotels HotelStore, rooms RoomStore, currency string) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{hotels: hotels, rooms: rooms, currency: currency}
}

func (s *Service) ListHotels(ctx context.Context, q HotelListQuery) ([]domain.Hotel, int64, repository.Pagination, error) {
	p := repository.Pagination{Page: q.Page, Limit: q.Limit}.Normalize()
	hotels, total, err := s.hotels.GetAll(ctx, repository.HotelFilters{
		City:   q.City,
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	return hotels, total, p, err
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !h.IsActive {
		return nil, ErrNotFound
	}
	return h, nil
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if _, err := s.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.rooms.ListByHotel(ctx, hotelID)
}

// CreateHotel registers a hotel for the acting owner, or for req.OwnerID when an admin acts.
func (s *Service) CreateHotel(ctx context.Context, actor lifecycle.Actor, req CreateHotelRequest) (*domain.Hotel, error) {
	ownerID := actor.UserID
	switch actor.Role {
	case domain.RoleHotelOwner:
	case domain.RoleAdmin:
		if req.OwnerID > 0 {
			ownerID = req.OwnerID
		}
	default:
		return nil, ErrForbidden
	}

	h := &domain.Hotel{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Stars:       req.Stars,
		IsActive:    true,
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) CreateRoom(ctx context.Context, actor lifecycle.Actor, hotelID int64, req CreateRoomRequest) (*domain.Room, error) {
	h, err := s.GetHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && (actor.Role != domain.RoleHotelOwner || h.OwnerID != actor.UserID) {
		return nil, ErrForbidden
	}
	if !req.PricePerNight.IsPositive() {
		return nil, ErrInvalidPrice
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	room := &domain.Room{
		HotelID:       hotelID,
		Number:        strings.TrimSpace(req.Number),
		RoomType:      domain.RoomType(req.RoomType),
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight.Round(2),
		Currency:      currency,
		IsActive:      true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}
