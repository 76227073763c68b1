package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carnaval/config"
	kafkaMocks "carnaval/infras/kafka/mocks"
	"carnaval/infras/otel/mocks"
	bookingMocks "carnaval/internal/domains/booking/mocks"
	"carnaval/internal/domains/booking/model"
	"carnaval/internal/domains/booking/model/dto"
	"carnaval/internal/domains/booking/service"
	hotelMocks "carnaval/internal/domains/hotel/mocks"
	hotelModel "carnaval/internal/domains/hotel/model"
	cacheMocks "carnaval/shared/cache/mocks"
	"carnaval/shared/constant"
	"carnaval/shared/timezone"
)

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	roomType := hotelModel.RoomType{
		ID:        "room-type-id",
		HotelID:   "hotel-id",
		RoomType:  "deluxe",
		Price:     45000,
		Available: 5,
	}

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func()
		wantErr   bool
		want      dto.AvailabilityResponse
	}{
		{
			name: "rooms available",
			req: dto.AvailabilityRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    2,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "deluxe").
					Return(roomType, nil)

				mockRepo.EXPECT().
					GetActiveOverlapping(gomock.Any(), "hotel-id", "deluxe", gomock.Any()).
					Return([]model.Booking{
						{
							ID:           "b1",
							HotelID:      "hotel-id",
							RoomType:     "deluxe",
							RoomCount:    3,
							Status:       model.StatusConfirmed,
							CheckInDate:  stay("2026-02-12"),
							CheckOutDate: stay("2026-02-15"),
						},
					}, nil)
			},
			wantErr: false,
			want:    dto.AvailabilityResponse{Available: true, AvailableRooms: 2},
		},
		{
			name: "capacity exhausted",
			req: dto.AvailabilityRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    3,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "deluxe").
					Return(roomType, nil)

				mockRepo.EXPECT().
					GetActiveOverlapping(gomock.Any(), "hotel-id", "deluxe", gomock.Any()).
					Return([]model.Booking{
						{
							ID:           "b1",
							HotelID:      "hotel-id",
							RoomType:     "deluxe",
							RoomCount:    3,
							Status:       model.StatusConfirmed,
							CheckInDate:  stay("2026-02-12"),
							CheckOutDate: stay("2026-02-15"),
						},
					}, nil)
			},
			wantErr: false,
			want:    dto.AvailabilityResponse{Available: false, AvailableRooms: 2},
		},
		{
			name: "unknown room type answers unavailable",
			req: dto.AvailabilityRequest{
				HotelID:      "hotel-id",
				RoomType:     "penthouse",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    1,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "penthouse").
					Return(hotelModel.RoomType{}, nil)
			},
			wantErr: false,
			want:    dto.AvailabilityResponse{Available: false, AvailableRooms: 0},
		},
		{
			name: "check out before check in",
			req: dto.AvailabilityRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				CheckInDate:  "2026-02-17",
				CheckOutDate: "2026-02-13",
				RoomCount:    1,
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "unparseable dates",
			req: dto.AvailabilityRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				CheckInDate:  "13/02/2026",
				CheckOutDate: "17/02/2026",
				RoomCount:    1,
			},
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.CheckAvailability(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, result)
			}
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.CommissionRate = 0.1
	cfg.Booking.ReferencePrefix = "CNV"

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	// No BeginTx/InsertTx expectations: a rejected request that still opens
	// the transaction fails the controller.
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
	}{
		{
			name: "invalid date format",
			req: dto.CreateBookingRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				GuestName:    "Ana Souza",
				CheckInDate:  "13/02/2026",
				CheckOutDate: "2026-02-17",
				RoomCount:    2,
			},
			setupMock: func() {},
		},
		{
			name: "check-out not after check-in",
			req: dto.CreateBookingRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				GuestName:    "Ana Souza",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-13",
				RoomCount:    2,
			},
			setupMock: func() {},
		},
		{
			name: "hotel lookup error",
			req: dto.CreateBookingRequest{
				HotelID:      "hotel-id",
				RoomType:     "deluxe",
				GuestName:    "Ana Souza",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    2,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, errors.New("db error"))
			},
		},
		{
			name: "hotel not found",
			req: dto.CreateBookingRequest{
				HotelID:      "missing-hotel-id",
				RoomType:     "deluxe",
				GuestName:    "Ana Souza",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    2,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{}, nil)
			},
		},
		{
			name: "room type not found",
			req: dto.CreateBookingRequest{
				HotelID:      "hotel-id",
				RoomType:     "presidential",
				GuestName:    "Ana Souza",
				CheckInDate:  "2026-02-13",
				CheckOutDate: "2026-02-17",
				RoomCount:    2,
			},
			setupMock: func() {
				mockHotelRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(hotelModel.Hotel{ID: "hotel-id"}, nil)

				mockHotelRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "presidential").
					Return(hotelModel.RoomType{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(context.Background(), tt.req)

			assert.Error(t, err)
			assert.Empty(t, result.ID)
			assert.Empty(t, result.Reference)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantID:  "",
		},
		{
			name: "cache miss, successful get from db",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{
						ID:        "test-id",
						Reference: "CNV-20260213-A1B2C3",
						Status:    model.StatusConfirmed,
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "test-id",
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Get(ctx, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestBookingService_GetByReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		reference string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "successful lookup",
			reference: "CNV-20260213-A1B2C3",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{
						ID:        "test-id",
						Reference: "CNV-20260213-A1B2C3",
					}, nil)
			},
			wantErr: false,
		},
		{
			name:      "unknown reference",
			reference: "CNV-20260213-ZZZZZZ",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.GetByReference(ctx, tt.reference)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.reference, result.Reference)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.BookingTopic = "booking-events"

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "pending to confirmed",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "test-id", Status: model.StatusPending}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "pending cannot check in",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn},
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "test-id", Status: model.StatusPending}, nil)
			},
			wantErr: true,
		},
		{
			name: "checked out is terminal",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "test-id", Status: model.StatusCheckedOut}, nil)
			},
			wantErr: true,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateStatus(ctx, tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockHotelRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.BookingTopic = "booking-events"

	svc := service.New(mockRepo, mockHotelRepo, cfg, mockCache, mockOtel, mockKafka)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cancel confirmed booking",
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "test-id", Status: model.StatusConfirmed}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cannot cancel after check in",
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "test-id", Status: model.StatusCheckedIn}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Cancel(ctx, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func stay(date string) time.Time {
	parsed, _ := timezone.Parse("2006-01-02", date)

	return parsed
}
