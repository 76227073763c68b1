package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"carnaval/config"
	"carnaval/infras/kafka"
	"carnaval/infras/otel"
	"carnaval/internal/domains/booking/ledger"
	"carnaval/internal/domains/booking/model"
	"carnaval/internal/domains/booking/model/dto"
	"carnaval/internal/domains/booking/repository"
	hotelModel "carnaval/internal/domains/hotel/model"
	hotelRepo "carnaval/internal/domains/hotel/repository"
	"carnaval/shared"
	"carnaval/shared/cache"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/failure"
	"carnaval/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	eventBookingCreated   = "booking.created"
	eventBookingCancelled = "booking.cancelled"
	eventBookingUpdated   = "booking.status_updated"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByReference(ctx context.Context, reference string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	broker    kafka.Client
}

func New(repo repository.Booking, hotelRepo hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, broker kafka.Client) Booking {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		broker:    broker,
	}
}

// CheckAvailability answers whether the requested room count fits the stay
// window. Missing hotels or room types answer available=false instead of
// erroring; this mirrors the gate Create applies before persisting.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := req.Stay()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse availability dates")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !stay.CheckOut.After(stay.CheckIn) {
		return res, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	roomType, err := s.hotelRepo.GetRoomType(ctx, req.HotelID, req.RoomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return dto.AvailabilityResponse{Available: false, AvailableRooms: 0}, nil
	}

	bookings, err := s.repo.GetActiveOverlapping(ctx, req.HotelID, req.RoomType, stay)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	availability := ledger.CheckAvailability(roomType, bookings, stay, req.RoomCount)

	return dto.AvailabilityResponse{
		Available:      availability.Available,
		AvailableRooms: availability.AvailableRooms,
	}, nil
}

// Create validates, prices, and persists a new booking. The availability
// re-check and the insert run inside one write-side transaction holding an
// advisory lock on the hotel+room type, closing the check-then-act window
// that would otherwise let two requests claim the last room.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := req.Stay()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking dates")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !stay.CheckOut.After(stay.CheckIn) {
		return res, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	roomType, err := s.hotelRepo.GetRoomType(ctx, req.HotelID, req.RoomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back booking transaction")
			}
		}
	}()

	if err = s.repo.AcquireStayLockTx(ctx, tx, req.HotelID, req.RoomType); err != nil {
		return res, err
	}

	bookings, err := s.repo.GetActiveOverlappingTx(ctx, tx, req.HotelID, req.RoomType, stay)
	if err != nil {
		return res, err
	}

	availability := ledger.CheckAvailability(roomType, bookings, stay, req.RoomCount)
	if !availability.Available {
		err = failure.Conflict("rooms not available for selected dates")

		return res, err // nolint:wrapcheck
	}

	commissionRate := hotel.CommissionRate
	if commissionRate == 0 {
		commissionRate = s.cfg.Booking.CommissionRate
	}

	quote := ledger.PriceQuote(roomType.Price, stay.CheckIn, stay.CheckOut, req.RoomCount, commissionRate)
	reference := ledger.NewReference(s.cfg.Booking.ReferencePrefix, timezone.Now())
	booking := req.ToModel(user, reference, stay, quote)

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	scope.AddEvent("Booking " + reference + " created")
	s.publishEvent(ctx, eventBookingCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByReference(ctx context.Context, reference string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(reference, model.FieldReference, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by reference")

		return res, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// UpdateStatus moves a booking along its lifecycle. Transitions outside the
// allowed graph are rejected as conflicts.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, req.Status, eventBookingUpdated)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.transition(ctx, id, model.StatusCancelled, eventBookingCancelled)
}

func (s *serviceImpl) transition(ctx context.Context, id, target, eventType string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, target) {
		return failure.Conflict(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, target)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = target
	s.publishEvent(ctx, eventType, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

// publishEvent emits a booking lifecycle event for the notification consumer.
// Publishing is best effort: a broker outage must not fail the booking.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	event := dto.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		HotelID:     booking.HotelID,
		RoomType:    booking.RoomType,
		RoomCount:   booking.RoomCount,
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
		OccurredAt:  timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: booking.ID, Value: event}
		if err := s.broker.SendMessages(c, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish booking event")
		}
	}()
}
