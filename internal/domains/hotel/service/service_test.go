package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carnaval/config"
	"carnaval/infras/otel/mocks"
	s3Mocks "carnaval/infras/s3/mocks"
	"carnaval/internal/domains/booking/ledger"
	bookingMocks "carnaval/internal/domains/booking/mocks"
	bookingModel "carnaval/internal/domains/booking/model"
	hotelMocks "carnaval/internal/domains/hotel/mocks"
	"carnaval/internal/domains/hotel/model"
	"carnaval/internal/domains/hotel/model/dto"
	"carnaval/internal/domains/hotel/service"
	cacheMocks "carnaval/shared/cache/mocks"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/timezone"
)

func newHotelService(t *testing.T) (service.Hotel, *hotelMocks.MockHotel, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockBookingRepo, mockCache
}

func mustStay(checkIn, checkOut string) ledger.Stay {
	in, _ := timezone.Parse("2006-01-02", checkIn)
	out, _ := timezone.Parse("2006-01-02", checkOut)

	return ledger.Stay{CheckIn: in, CheckOut: out}
}

func TestHotelService_GetAvailable(t *testing.T) {
	svc, mockRepo, mockBookingRepo, _ := newHotelService(t)

	hotels := []model.Hotel{
		{ID: "full-hotel", Name: "Hotel Lotado"},
		{ID: "free-hotel", Name: "Pousada Vazia"},
	}

	stay := mustStay("2026-02-13", "2026-02-17")

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hotels, nil)

	mockRepo.EXPECT().
		GetRoomTypes(gomock.Any(), "full-hotel").
		Return([]model.RoomType{
			{ID: "rt1", HotelID: "full-hotel", RoomType: "standard", Available: 2},
		}, nil)

	mockBookingRepo.EXPECT().
		GetActiveOverlapping(gomock.Any(), "full-hotel", "", gomock.Any()).
		Return([]bookingModel.Booking{
			{
				ID:           "b1",
				HotelID:      "full-hotel",
				RoomType:     "standard",
				RoomCount:    2,
				Status:       bookingModel.StatusConfirmed,
				CheckInDate:  stay.CheckIn,
				CheckOutDate: stay.CheckOut,
			},
		}, nil)

	mockRepo.EXPECT().
		GetRoomTypes(gomock.Any(), "free-hotel").
		Return([]model.RoomType{
			{ID: "rt2", HotelID: "free-hotel", RoomType: "standard", Available: 4},
		}, nil)

	mockBookingRepo.EXPECT().
		GetActiveOverlapping(gomock.Any(), "free-hotel", "", gomock.Any()).
		Return([]bookingModel.Booking{}, nil)

	result, err := svc.GetAvailable(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{}, stay)

	assert.NoError(t, err)
	assert.Len(t, result.Hotels, 1)
	assert.Equal(t, "free-hotel", result.Hotels[0].ID)
}

func TestHotelService_GetAvailable_InvalidStay(t *testing.T) {
	svc, _, _, _ := newHotelService(t)

	stay := mustStay("2026-02-17", "2026-02-13")

	_, err := svc.GetAvailable(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{}, stay)

	assert.Error(t, err)
}

func TestHotelService_Rate(t *testing.T) {
	svc, mockRepo, _, mockCache := newHotelService(t)

	tests := []struct {
		name      string
		req       dto.RateHotelRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "rating folds into running totals",
			req:  dto.RateHotelRequest{Rating: 5},
			id:   "test-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Hotel{ID: "test-id", RatingTotal: 12, RatingCount: 3}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 17, fields[model.FieldRatingTotal])
						assert.Equal(t, 4, fields[model.FieldRatingCount])

						return nil
					})

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
			name: "hotel not found",
			req:  dto.RateHotelRequest{Rating: 4},
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Hotel{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Rate(ctx, tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_AddRoomType(t *testing.T) {
	svc, mockRepo, _, mockCache := newHotelService(t)

	tests := []struct {
		name      string
		req       dto.CreateRoomTypeRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful add",
			req:  dto.CreateRoomTypeRequest{RoomType: "suite", Price: 90000, Available: 3},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "suite").
					Return(model.RoomType{}, nil)

				mockRepo.EXPECT().
					InsertRoomType(gomock.Any(), gomock.Any()).
					Return(nil)

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
			name: "duplicate room type",
			req:  dto.CreateRoomTypeRequest{RoomType: "suite", Price: 90000, Available: 3},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "suite").
					Return(model.RoomType{ID: "existing-id", HotelID: "hotel-id", RoomType: "suite"}, nil)
			},
			wantErr: true,
		},
		{
			name: "hotel not found",
			req:  dto.CreateRoomTypeRequest{RoomType: "suite", Price: 90000, Available: 3},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.AddRoomType(ctx, tt.req, "hotel-id")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_UpdateRoomType(t *testing.T) {
	svc, mockRepo, _, mockCache := newHotelService(t)

	price := int64(120000)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful update",
			setupMock: func() {
				mockRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "suite").
					Return(model.RoomType{ID: "rt-id", HotelID: "hotel-id", RoomType: "suite"}, nil)

				mockRepo.EXPECT().
					UpdateRoomType(gomock.Any(), gomock.Any(), "rt-id").
					Return(nil)

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
			name: "room type not found",
			setupMock: func() {
				mockRepo.EXPECT().
					GetRoomType(gomock.Any(), "hotel-id", "suite").
					Return(model.RoomType{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateRoomType(ctx, dto.UpdateRoomTypeRequest{Price: &price}, "hotel-id", "suite")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newHotelService(t)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss, hotel found with room types",
			id:   "test-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Hotel{ID: "test-id", Name: "Hotel Gloria"}, nil)

				mockRepo.EXPECT().
					GetRoomTypes(gomock.Any(), "test-id").
					Return([]model.RoomType{
						{ID: "rt-id", HotelID: "test-id", RoomType: "standard", Available: 10},
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "hotel not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Hotel{}, nil)
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
				assert.Equal(t, tt.id, result.ID)
				assert.Len(t, result.RoomTypes, 1)
			}
		})
	}
}
