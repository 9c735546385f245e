package catalog

import "github.com/shopspring/decimal"

type CreateHotelRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Stars       int    `json:"stars" validate:"gte=0,lte=5"`
	// OwnerID lets an admin create a hotel on behalf of an owner.
	OwnerID int64 `json:"owner_id,omitempty"`
}

type CreateRoomRequest struct {
	Number        string          `json:"number" validate:"required,max=20"`
	RoomType      string          `json:"room_type" validate:"required,oneof=single double suite family"`
	Capacity      int             `json:"capacity" validate:"required,gt=0,lte=20"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Currency      string          `json:"currency" validate:"omitempty,iso4217"`
}

type HotelListQuery struct {
	City  string `form:"city"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}
