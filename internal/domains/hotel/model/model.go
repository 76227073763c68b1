package model

import (
	"math"

	"github.com/lib/pq"

	"carnaval/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID             = "id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldAddress        = "address"
	FieldCity           = "city"
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
	FieldAmenities      = "amenities"
	FieldImage          = "image"
	FieldCommissionRate = "commission_rate"
	FieldRatingTotal    = "rating_total"
	FieldRatingCount    = "rating_count"
	FieldActive         = "active"
)

const (
	RoomTypeTableName  = "hotel_room_types"
	RoomTypeEntityName = "room_type"

	FieldRoomTypeID = "id"
	FieldHotelID    = "hotel_id"
	FieldRoomType   = "room_type"
	FieldPrice      = "price"
	FieldAvailable  = "available"
)

type Hotel struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	Address        string         `db:"address"`
	City           string         `db:"city"`
	Latitude       float64        `db:"latitude"`
	Longitude      float64        `db:"longitude"`
	Amenities      pq.StringArray `db:"amenities"`
	Image          string         `db:"image"`
	CommissionRate float64        `db:"commission_rate"`
	RatingTotal    int            `db:"rating_total"`
	RatingCount    int            `db:"rating_count"`
	Active         bool           `db:"active"`
	model.Metadata
}

// AverageRating derives the display rating from the running total, rounded to
// one decimal. Zero ratings yield zero, not NaN.
func (h Hotel) AverageRating() float64 {
	if h.RatingCount == 0 {
		return 0
	}

	return math.Round(float64(h.RatingTotal)/float64(h.RatingCount)*10) / 10
}

// RoomType holds a hotel's nominal inventory for one room category. Available
// is configured capacity, not live remaining capacity; remaining rooms are
// always derived by summing active bookings against this figure.
type RoomType struct {
	ID        string `db:"id"`
	HotelID   string `db:"hotel_id"`
	RoomType  string `db:"room_type"`
	Price     int64  `db:"price"`
	Available int    `db:"available"`
	model.Metadata
}
