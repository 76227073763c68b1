package model

import (
	"time"

	"carnaval/shared/model"
)

const (
	TableName  = "hotel_bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldReference     = "reference"
	FieldHotelID       = "hotel_id"
	FieldRoomType      = "room_type"
	FieldGuestName     = "guest_name"
	FieldGuestEmail    = "guest_email"
	FieldGuestPhone    = "guest_phone"
	FieldCheckInDate   = "check_in_date"
	FieldCheckOutDate  = "check_out_date"
	FieldRoomCount     = "room_count"
	FieldNights        = "nights"
	FieldPricePerNight = "price_per_night"
	FieldTotalAmount   = "total_amount"
	FieldPlatformFee   = "platform_fee"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldCreatedBy     = "created_by"
)

// Booking statuses form a closed set; requests carrying anything else are
// rejected at the boundary.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

// ActiveStatuses lists the statuses that still consume room inventory. Only
// status gates the availability filter; whether the stay already occurred does
// not.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed, StatusCheckedIn}
}

func IsActiveStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a booking may move between the two statuses.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled || to == StatusNoShow
	case StatusConfirmed:
		return to == StatusCheckedIn || to == StatusCancelled || to == StatusNoShow
	case StatusCheckedIn:
		return to == StatusCheckedOut
	default:
		return false
	}
}

type Booking struct {
	ID            string    `db:"id"`
	Reference     string    `db:"reference"`
	HotelID       string    `db:"hotel_id"`
	RoomType      string    `db:"room_type"`
	GuestName     string    `db:"guest_name"`
	GuestEmail    string    `db:"guest_email"`
	GuestPhone    string    `db:"guest_phone"`
	CheckInDate   time.Time `db:"check_in_date"`
	CheckOutDate  time.Time `db:"check_out_date"`
	RoomCount     int       `db:"room_count"`
	Nights        int       `db:"nights"`
	PricePerNight int64     `db:"price_per_night"`
	TotalAmount   int64     `db:"total_amount"`
	PlatformFee   int64     `db:"platform_fee"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	model.Metadata
}
