package dto

import (
	"time"

	"github.com/google/uuid"

	"carnaval/internal/domains/booking/ledger"
	"carnaval/internal/domains/booking/model"
	"carnaval/shared"
	gDto "carnaval/shared/dto"
	gModel "carnaval/shared/model"
	"carnaval/shared/timezone"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	HotelID      string `json:"hotel_id"       validate:"required"`
	RoomType     string `json:"room_type"      validate:"required,max=50"`
	GuestName    string `json:"guest_name"     validate:"required,max=100"`
	GuestEmail   string `json:"guest_email"    validate:"omitempty,email,max=100"`
	GuestPhone   string `json:"guest_phone"    validate:"omitempty,max=20"`
	CheckInDate  string `json:"check_in_date"  validate:"required"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
	RoomCount    int    `json:"room_count"     validate:"required,min=1"`
}

// Stay parses the requested window. Check-in and check-out are calendar
// dates; the strict overlap test runs on their midnight instants.
func (c *CreateBookingRequest) Stay() (ledger.Stay, error) {
	checkIn, err := timezone.Parse(dateLayout, c.CheckInDate)
	if err != nil {
		return ledger.Stay{}, err
	}

	checkOut, err := timezone.Parse(dateLayout, c.CheckOutDate)
	if err != nil {
		return ledger.Stay{}, err
	}

	return ledger.Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func (c *CreateBookingRequest) ToModel(user, reference string, stay ledger.Stay, quote ledger.Quote) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		Reference:     reference,
		HotelID:       c.HotelID,
		RoomType:      c.RoomType,
		GuestName:     c.GuestName,
		GuestEmail:    c.GuestEmail,
		GuestPhone:    c.GuestPhone,
		CheckInDate:   stay.CheckIn,
		CheckOutDate:  stay.CheckOut,
		RoomCount:     c.RoomCount,
		Nights:        quote.Nights,
		PricePerNight: quote.PricePerNight,
		TotalAmount:   quote.TotalAmount,
		PlatformFee:   quote.PlatformFee,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type AvailabilityRequest struct {
	HotelID      string `json:"hotel_id"       validate:"required"`
	RoomType     string `json:"room_type"      validate:"required,max=50"`
	CheckInDate  string `json:"check_in_date"  validate:"required"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
	RoomCount    int    `json:"room_count"     validate:"required,min=1"`
}

func (a *AvailabilityRequest) Stay() (ledger.Stay, error) {
	checkIn, err := timezone.Parse(dateLayout, a.CheckInDate)
	if err != nil {
		return ledger.Stay{}, err
	}

	checkOut, err := timezone.Parse(dateLayout, a.CheckOutDate)
	if err != nil {
		return ledger.Stay{}, err
	}

	return ledger.Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

type AvailabilityResponse struct {
	Available      bool `json:"available"`
	AvailableRooms int  `json:"available_rooms"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed checked_in checked_out cancelled no_show"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	HotelID       string `json:"hotel_id"`
	RoomType      string `json:"room_type"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	GuestPhone    string `json:"guest_phone"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	RoomCount     int    `json:"room_count"`
	Nights        int    `json:"nights"`
	PricePerNight int64  `json:"price_per_night"`
	TotalAmount   int64  `json:"total_amount"`
	PlatformFee   int64  `json:"platform_fee"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.Reference = booking.Reference
	r.HotelID = booking.HotelID
	r.RoomType = booking.RoomType
	r.GuestName = booking.GuestName
	r.GuestEmail = booking.GuestEmail
	r.GuestPhone = booking.GuestPhone
	r.CheckInDate = booking.CheckInDate.Format(dateLayout)
	r.CheckOutDate = booking.CheckOutDate.Format(dateLayout)
	r.RoomCount = booking.RoomCount
	r.Nights = booking.Nights
	r.PricePerNight = booking.PricePerNight
	r.TotalAmount = booking.TotalAmount
	r.PlatformFee = booking.PlatformFee
	r.Status = booking.Status
	r.PaymentStatus = booking.PaymentStatus
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingEvent is the payload published to Kafka on booking lifecycle changes.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	Reference   string    `json:"reference"`
	HotelID     string    `json:"hotel_id"`
	RoomType    string    `json:"room_type"`
	RoomCount   int       `json:"room_count"`
	TotalAmount int64     `json:"total_amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
