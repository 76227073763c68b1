package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"carnaval/config"
	"carnaval/infras/otel"
	"carnaval/internal/domains/event/model"
	"carnaval/internal/domains/event/model/dto"
	"carnaval/internal/domains/event/repository"
	"carnaval/internal/domains/event/schedule"
	"carnaval/shared"
	"carnaval/shared/cache"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/failure"
	"carnaval/shared/geo"
	"carnaval/shared/timezone"
)

const (
	cacheGetEvent    = "event:get"
	cacheGetAllEvent = "event:gets"
	cacheCountEvent  = "event:count"
)

type Event interface {
	Create(ctx context.Context, req dto.CreateEventRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, opts dto.ListOptions) (dto.GetEventsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EventResponse, error)
	Update(ctx context.Context, req dto.UpdateEventRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetGrouped(ctx context.Context) (dto.GroupedEventsResponse, error)
	GetCountdown(ctx context.Context, id string) (dto.CountdownResponse, error)
	GetNearby(ctx context.Context, lat, lon, radiusKm float64) (dto.GetEventsResponse, error)
}

type serviceImpl struct {
	repo  repository.Event
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Event, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Event {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEventRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse event request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if event.EndTime.Before(event.StartTime) {
		return failure.BadRequestFromString("end_time must not be before start_time") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to create event")

		return fmt.Errorf("failed to create event: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, opts dto.ListOptions) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	events, err := s.getModels(ctx, req, filter)
	if err != nil {
		return res, err
	}

	now := s.referenceTime(opts.At)
	events = applyListOptions(events, opts, now)

	// In-memory filters narrow the fetched page, so the repo count would
	// overstate totals for the narrowed list.
	total := len(events)

	if !opts.Filtered() {
		total, err = s.Count(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count events")

			return res, fmt.Errorf("failed to count events: %w", err)
		}
	}

	res.FromModels(events, now, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(event, timezone.Now())

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEventRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if event exists")

		return fmt.Errorf("failed to check if event exists: %w", err)
	}

	if !exist {
		log.Error().Msg("event not found")

		return failure.NotFound("event not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartTime != "" {
		startTime, parseErr := time.Parse(constant.DateFormat, req.StartTime)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid start_time: %v", parseErr)) // nolint:wrapcheck
		}

		updatedFields[model.FieldStartTime] = startTime
	}

	if req.EndTime != "" {
		endTime, parseErr := time.Parse(constant.DateFormat, req.EndTime)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_time: %v", parseErr)) // nolint:wrapcheck
		}

		updatedFields[model.FieldEndTime] = endTime
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update event")

		return fmt.Errorf("failed to update event: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEvent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete event from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if event exists")

		return fmt.Errorf("failed to check if event exists: %w", err)
	}

	if !exist {
		log.Error().Msg("event not found")

		return failure.NotFound("event not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete event")

		return fmt.Errorf("failed to delete event: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEvent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete event from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
	}()

	return nil
}

func (s *serviceImpl) GetGrouped(ctx context.Context) (res dto.GroupedEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetGrouped")
	defer scope.End()
	defer scope.TraceIfError(err)

	events, err := s.getModels(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	res.FromGroups(schedule.GroupByCategory(events), timezone.Now())

	return res, nil
}

func (s *serviceImpl) GetCountdown(ctx context.Context, id string) (res dto.CountdownResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCountdown")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	return dto.CountdownResponse{
		EventID:   event.ID,
		Status:    schedule.Status(event, now),
		Countdown: schedule.FormatCountdown(schedule.TimeUntil(event, now)),
	}, nil
}

func (s *serviceImpl) GetNearby(ctx context.Context, lat, lon, radiusKm float64) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetNearby")
	defer scope.End()
	defer scope.TraceIfError(err)

	events, err := s.getModels(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	nearby := []model.Event{}

	for _, event := range events {
		if geo.WithinRadius(lat, lon, event.Latitude, event.Longitude, radiusKm) {
			nearby = append(nearby, event)
		}
	}

	res.FromModels(nearby, timezone.Now(), len(nearby), 0)

	return res, nil
}

// getModels fetches raw event rows, cache-aside. The cache holds models, not
// rendered responses, so lifecycle status is always recomputed from the clock.
func (s *serviceImpl) getModels(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (events []model.Event, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &events)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return events, nil
	}

	events, err = s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, events, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return events, nil
}

func (s *serviceImpl) getModel(ctx context.Context, id string) (event model.Event, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetEvent, id)

	err = s.cache.Get(ctx, cacheKey, &event)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return event, nil
	}

	event, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return event, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return event, failure.NotFound("event not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, event, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return event, nil
}

func (s *serviceImpl) referenceTime(at *time.Time) time.Time {
	if at != nil && !at.IsZero() {
		return timezone.ToAppTime(*at)
	}

	return timezone.Now()
}

func applyListOptions(events []model.Event, opts dto.ListOptions, now time.Time) []model.Event {
	switch opts.Status {
	case model.StatusLive:
		events = schedule.Live(events, now)
	case model.StatusUpcoming:
		events = schedule.Upcoming(events, now)
	case model.StatusPast:
		events = schedule.Past(events, now)
	}

	if opts.Query != "" {
		events = schedule.Search(events, opts.Query)
	}

	if opts.RangeStart != nil && opts.RangeEnd != nil {
		events = schedule.FilterByDateRange(events, *opts.RangeStart, *opts.RangeEnd)
	}

	switch opts.Sort {
	case dto.SortStartTimeAsc:
		events = schedule.SortByStartTime(events, true)
	case dto.SortStartTimeDesc:
		events = schedule.SortByStartTime(events, false)
	}

	return events
}
