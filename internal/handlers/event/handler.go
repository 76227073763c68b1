package event

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"carnaval/infras/otel"
	"carnaval/internal/domains/event/model"
	"carnaval/internal/domains/event/model/dto"
	"carnaval/internal/domains/event/service"
	"carnaval/shared"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/failure"
	"carnaval/shared/timezone"
	"carnaval/shared/validator"
	"carnaval/transport/http/middleware"
	"carnaval/transport/http/response"
)

type Handler struct {
	service    service.Event
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Event, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/grouped", handler.GetGroupedEvents)
		routerGroup.Get("/nearby", handler.GetNearbyEvents)
		routerGroup.Get("/{id}", handler.GetEventByID)
		routerGroup.Get("/{id}/countdown", handler.GetEventCountdown)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.Auth, handler.middleware.RBAC)
			protected.Post("/", handler.CreateEvent)
			protected.Patch("/{id}", handler.UpdateEvent)
			protected.Delete("/{id}", handler.DeleteEvent)
		})
	})
}

// CreateEvent handles the creation of a new carnival event.
// @Summary Create a new event
// @Description Create a new carnival event with schedule, venue and badge details.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Create Event Request"
// @Success 201 {object} response.Message "Event created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
// @Security BearerAuth
func (handler *Handler) CreateEvent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEvent")
	defer scope.End()

	req := dto.CreateEventRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Event created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Event created successfully")
}

// GetEvents retrieves events filtered by lifecycle status, category, text
// search and date range.
// @Summary Get all events
// @Description Retrieve events with optional lifecycle, category, search and date-range filters.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Lifecycle filter (live, upcoming, past)"
// @Param category query string false "Filter by category"
// @Param q query string false "Search in name, description and tags"
// @Param sort query string false "Sort by start time (start_time, -start_time)"
// @Param range_start query string false "Range start (RFC3339)"
// @Param range_end query string false "Range end (RFC3339)"
// @Success 200 {object} dto.GetEventsResponse "List of events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != "" {
		if !model.IsValidCategory(category) {
			err := failure.BadRequestFromString("category must be one of: " + strings.Join(model.Categories(), ", "))
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	opts := dto.ListOptions{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Sort:   r.URL.Query().Get("sort"),
	}

	if err := validator.ValidateStruct(&opts); err != nil {
		response.WithError(w, err)

		return
	}

	if raw := r.URL.Query().Get("range_start"); raw != "" {
		parsed, err := timezone.Parse(constant.DateFormat, raw)
		if err != nil {
			response.WithError(w, err)

			return
		}

		opts.RangeStart = &parsed
	}

	if raw := r.URL.Query().Get("range_end"); raw != "" {
		parsed, err := timezone.Parse(constant.DateFormat, raw)
		if err != nil {
			response.WithError(w, err)

			return
		}

		opts.RangeEnd = &parsed
	}

	events, err := handler.service.GetAll(ctx, queryParams, filterGroup, opts)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetGroupedEvents partitions every event into live, upcoming and past buckets.
// @Summary Get events grouped by lifecycle
// @Description Retrieve all events partitioned into live, upcoming and past groups.
// @Tags Event
// @Accept json
// @Produce json
// @Success 200 {object} dto.GroupedEventsResponse "Grouped events"
// @Failure 500 {object} response.Error
// @Router /v1/events/grouped [get]
func (handler *Handler) GetGroupedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroupedEvents")
	defer scope.End()

	events, err := handler.service.GetGrouped(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get grouped events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Grouped events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetNearbyEvents retrieves events within a radius of a coordinate.
// @Summary Get nearby events
// @Description Retrieve events whose venue lies within radius_km of the given coordinate.
// @Tags Event
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Radius in kilometers (default 5)"
// @Success 200 {object} dto.GetEventsResponse "Nearby events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/nearby [get]
func (handler *Handler) GetNearbyEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNearbyEvents")
	defer scope.End()

	lat, errLat := shared.ConvertStringToFloat(r.URL.Query().Get("lat"))
	lon, errLon := shared.ConvertStringToFloat(r.URL.Query().Get("lon"))

	if errLat != nil || errLon != nil {
		response.WithMessage(w, http.StatusBadRequest, "lat and lon query parameters are required")

		return
	}

	radiusKm := 5.0
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		if parsed, err := shared.ConvertStringToFloat(raw); err == nil {
			radiusKm = parsed
		}
	}

	events, err := handler.service.GetNearby(ctx, lat, lon, radiusKm)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get nearby events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Nearby events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetEventByID retrieves an event by its ID.
// @Summary Get an event by ID
// @Description Retrieve an event with its computed lifecycle status and countdown.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse "Event details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
func (handler *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	event, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event retrieved successfully")

	response.WithJSON(w, http.StatusOK, event)
}

// GetEventCountdown retrieves the countdown until an event starts.
// @Summary Get event countdown
// @Description Retrieve the remaining days, hours, minutes and seconds until the event starts.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.CountdownResponse "Countdown details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/countdown [get]
func (handler *Handler) GetEventCountdown(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventCountdown")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	countdown, err := handler.service.GetCountdown(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event countdown")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event countdown retrieved successfully")

	response.WithJSON(w, http.StatusOK, countdown)
}

// UpdateEvent updates an existing event by its ID.
// @Summary Update an event by ID
// @Description Update the details of an existing event.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Update Event Request"
// @Success 200 {object} response.Message "Event updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEventRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update event")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event updated successfully")

	response.WithMessage(w, http.StatusOK, "Event updated successfully")
}

// DeleteEvent deletes an event by its ID.
// @Summary Delete an event by ID
// @Description Delete an event by its unique identifier.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEvent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete event")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event deleted successfully")

	response.WithMessage(w, http.StatusOK, "Event deleted successfully")
}
