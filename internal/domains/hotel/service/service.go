package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"carnaval/config"
	"carnaval/infras/otel"
	"carnaval/infras/s3"
	"carnaval/internal/domains/booking/ledger"
	bookingModel "carnaval/internal/domains/booking/model"
	bookingRepo "carnaval/internal/domains/booking/repository"
	"carnaval/internal/domains/hotel/model"
	"carnaval/internal/domains/hotel/model/dto"
	"carnaval/internal/domains/hotel/repository"
	"carnaval/shared"
	"carnaval/shared/cache"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/failure"
	"carnaval/shared/geo"
	"carnaval/shared/timezone"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheGetAllHotel = "hotel:gets"
	cacheCountHotel  = "hotel:count"
)

type Hotel interface {
	Create(ctx context.Context, req dto.CreateHotelRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	GetAvailable(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, stay ledger.Stay) (dto.GetHotelsResponse, error)
	GetNearby(ctx context.Context, lat, lon, radiusKm float64) (dto.GetHotelsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HotelResponse, error)
	Update(ctx context.Context, req dto.UpdateHotelRequest, id string) error
	Delete(ctx context.Context, id string) error
	Rate(ctx context.Context, req dto.RateHotelRequest, id string) error
	AddRoomType(ctx context.Context, req dto.CreateRoomTypeRequest, hotelID string) error
	UpdateRoomType(ctx context.Context, req dto.UpdateRoomTypeRequest, hotelID, roomType string) error
	DeleteRoomType(ctx context.Context, hotelID, roomType string) error
}

type serviceImpl struct {
	repo        repository.Hotel
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(repo repository.Hotel, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Hotel {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	var uploadedObjectName string

	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return fmt.Errorf("failed to upload image: %w", err)
		}

		imageURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

// GetAvailable keeps only hotels with at least one room free for the stay
// window. Remaining capacity is derived per hotel by summing active
// overlapping bookings against nominal room-type inventory.
func (s *serviceImpl) GetAvailable(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, stay ledger.Stay) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !stay.CheckOut.After(stay.CheckIn) {
		return res, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	hotels, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	roomTypesByHotel := make(map[string][]model.RoomType, len(hotels))
	bookings := []bookingModel.Booking{}

	for _, hotel := range hotels {
		roomTypes, err := s.repo.GetRoomTypes(ctx, hotel.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get room types")

			return res, fmt.Errorf("failed to get room types: %w", err)
		}

		roomTypesByHotel[hotel.ID] = roomTypes

		hotelBookings, err := s.bookingRepo.GetActiveOverlapping(ctx, hotel.ID, "", stay)
		if err != nil {
			log.Error().Err(err).Msg("failed to get overlapping bookings")

			return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
		}

		bookings = append(bookings, hotelBookings...)
	}

	available := ledger.FilterByAvailability(hotels, roomTypesByHotel, bookings, stay)
	res.FromModels(available, len(available), 0)

	return res, nil
}

func (s *serviceImpl) GetNearby(ctx context.Context, lat, lon, radiusKm float64) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetNearby")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotels, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	nearby := []model.Hotel{}

	for _, hotel := range hotels {
		if geo.WithinRadius(lat, lon, hotel.Latitude, hotel.Longitude, radiusKm) {
			nearby = append(nearby, hotel)
		}
	}

	res.FromModels(nearby, len(nearby), 0)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	roomTypes, err := s.repo.GetRoomTypes(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModel(hotel)
	res.WithRoomTypes(roomTypes)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !exist {
		log.Error().Msg("hotel not found")

		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		parts := strings.Split(req.Image.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return fmt.Errorf("failed to upload image: %w", err)
		}

		updatedFields[model.FieldImage] = url
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update hotel")

		return fmt.Errorf("failed to update hotel: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	hotel, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		log.Error().Msg("hotel not found")

		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete hotel")

		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	if hotel.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		objectName := s.s3.GetObjectNameFromURL(bucketName, hotel.Image)

		if deleteErr := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); deleteErr != nil {
			log.Error().Err(deleteErr).Msg("failed to delete hotel image from S3")
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// Rate folds a new rating into the hotel's running total. The average is
// always derived from total and count, never stored.
func (s *serviceImpl) Rate(ctx context.Context, req dto.RateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	hotel, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldRatingTotal:   hotel.RatingTotal + req.Rating,
		model.FieldRatingCount:   hotel.RatingCount + 1,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to rate hotel")

		return fmt.Errorf("failed to rate hotel: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddRoomType(ctx context.Context, req dto.CreateRoomTypeRequest, hotelID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(hotelID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !exist {
		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	existing, err := s.repo.GetRoomType(ctx, hotelID, req.RoomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room type")

		return fmt.Errorf("failed to check room type: %w", err)
	}

	if existing.ID != constant.Empty {
		return failure.Conflict("room type already exists for this hotel") // nolint:wrapcheck
	}

	if err := s.repo.InsertRoomType(ctx, req.ToModel(user, hotelID)); err != nil {
		log.Error().Err(err).Msg("failed to add room type")

		return fmt.Errorf("failed to add room type: %w", err)
	}

	s.invalidate(ctx, hotelID)

	return nil
}

func (s *serviceImpl) UpdateRoomType(ctx context.Context, req dto.UpdateRoomTypeRequest, hotelID, roomType string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.repo.GetRoomType(ctx, hotelID, roomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if err := s.repo.UpdateRoomType(ctx, updatedFields, existing.ID); err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return fmt.Errorf("failed to update room type: %w", err)
	}

	s.invalidate(ctx, hotelID)

	return nil
}

func (s *serviceImpl) DeleteRoomType(ctx context.Context, hotelID, roomType string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.repo.GetRoomType(ctx, hotelID, roomType)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return fmt.Errorf("failed to get room type: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("room type not found") // nolint:wrapcheck
	}

	if err := s.repo.DeleteRoomType(ctx, existing.ID); err != nil {
		log.Error().Err(err).Msg("failed to delete room type")

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	s.invalidate(ctx, hotelID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
	}()
}
