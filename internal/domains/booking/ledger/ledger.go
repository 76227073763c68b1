// Package ledger computes remaining room capacity and booking prices. It is
// pure accounting: capacity is always derived by summing active bookings
// against nominal inventory, never by mutating a counter, so there is no
// stored remaining-rooms figure to drift or lose updates.
package ledger

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	bookingModel "carnaval/internal/domains/booking/model"
	hotelModel "carnaval/internal/domains/hotel/model"
)

// Stay is a requested check-in/check-out window.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Availability is the result of checking a stay request against inventory.
type Availability struct {
	Available      bool
	AvailableRooms int
}

// Quote prices a stay before it is persisted.
type Quote struct {
	Nights        int
	PricePerNight int64
	TotalAmount   int64
	PlatformFee   int64
}

// DatesOverlap is the strict half-open interval test used for inventory
// accounting: back-to-back stays where one checkout equals another check-in do
// NOT overlap, permitting same-day room turnover. Event listings use an
// inclusive test instead; the two must not be unified.
func DatesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// RemainingForType returns the rooms still free for one room type over the
// stay window: nominal capacity minus the room counts of active overlapping
// bookings for that hotel and type, floored at zero.
func RemainingForType(roomType hotelModel.RoomType, bookings []bookingModel.Booking, stay Stay) int {
	booked := 0

	for _, booking := range bookings {
		if booking.HotelID != roomType.HotelID || booking.RoomType != roomType.RoomType {
			continue
		}

		if !bookingModel.IsActiveStatus(booking.Status) {
			continue
		}

		if DatesOverlap(stay.CheckIn, stay.CheckOut, booking.CheckInDate, booking.CheckOutDate) {
			booked += booking.RoomCount
		}
	}

	remaining := roomType.Available - booked
	if remaining < 0 {
		return 0
	}

	return remaining
}

// AvailableRooms sums the remaining capacity across all of a hotel's room
// types for the stay window. Each type is floored at zero before summing, so
// an oversold type never eats into another type's capacity.
func AvailableRooms(roomTypes []hotelModel.RoomType, bookings []bookingModel.Booking, stay Stay) int {
	total := 0

	for _, roomType := range roomTypes {
		total += RemainingForType(roomType, bookings, stay)
	}

	return total
}

// FilterByAvailability keeps the hotels with at least one free room for the
// stay window. A hotel at exactly zero remaining capacity is excluded.
func FilterByAvailability(hotels []hotelModel.Hotel, roomTypesByHotel map[string][]hotelModel.RoomType, bookings []bookingModel.Booking, stay Stay) []hotelModel.Hotel {
	result := []hotelModel.Hotel{}

	for _, hotel := range hotels {
		if AvailableRooms(roomTypesByHotel[hotel.ID], bookings, stay) > 0 {
			result = append(result, hotel)
		}
	}

	return result
}

// CheckAvailability is the gate for accepting a new booking: the request fits
// iff the remaining capacity for the exact room type covers the requested
// count.
func CheckAvailability(roomType hotelModel.RoomType, bookings []bookingModel.Booking, stay Stay, requested int) Availability {
	remaining := RemainingForType(roomType, bookings, stay)

	return Availability{
		Available:      remaining >= requested && requested > 0,
		AvailableRooms: remaining,
	}
}

// Nights returns the chargeable night count for a stay, rounding partial
// nights up.
func Nights(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 0
	}

	return int(math.Ceil(hours / 24))
}

// PriceQuote derives the totals for a stay: total = price * nights * rooms,
// platform fee = total * commission rate.
func PriceQuote(pricePerNight int64, checkIn, checkOut time.Time, roomCount int, commissionRate float64) Quote {
	nights := Nights(checkIn, checkOut)
	total := pricePerNight * int64(nights) * int64(roomCount)

	return Quote{
		Nights:        nights,
		PricePerNight: pricePerNight,
		TotalAmount:   total,
		PlatformFee:   int64(math.Round(float64(total) * commissionRate)),
	}
}

// NewReference generates a booking reference of the form PREFIX-TOKEN1-TOKEN2
// where TOKEN1 is the millisecond timestamp and TOKEN2 crypto-random entropy,
// both base36 uppercase. References must be unique before use as a lookup key.
func NewReference(prefix string, now time.Time) string {
	timeToken := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// fall back to the clock rather than abort the booking.
		binary.BigEndian.PutUint64(buf, uint64(now.UnixNano()))
	}

	randToken := strings.ToUpper(strconv.FormatUint(binary.BigEndian.Uint64(buf)>>16, 36))

	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), timeToken, randToken)
}
