package hotel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"carnaval/infras/otel"
	"carnaval/internal/domains/booking/ledger"
	"carnaval/internal/domains/hotel/model"
	"carnaval/internal/domains/hotel/model/dto"
	"carnaval/internal/domains/hotel/service"
	"carnaval/shared"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/timezone"
	"carnaval/shared/validator"
	"carnaval/transport/http/middleware"
	"carnaval/transport/http/response"
)

const stayDateLayout = "2006-01-02"

type Handler struct {
	service    service.Hotel
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Hotel, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Get("/available", handler.GetAvailableHotels)
		routerGroup.Get("/nearby", handler.GetNearbyHotels)
		routerGroup.Get("/{id}", handler.GetHotelByID)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.middleware.Auth, handler.middleware.RBAC)
			protected.Post("/", handler.CreateHotel)
			protected.Patch("/{id}", handler.UpdateHotel)
			protected.Delete("/{id}", handler.DeleteHotel)
			protected.Post("/{id}/ratings", handler.RateHotel)
			protected.Post("/{id}/room-types", handler.AddRoomType)
			protected.Patch("/{id}/room-types/{roomType}", handler.UpdateRoomType)
			protected.Delete("/{id}/room-types/{roomType}", handler.DeleteRoomType)
		})
	})
}

// CreateHotel handles the creation of a new partner hotel.
// @Summary Create a new hotel
// @Description Create a new partner hotel with the provided details.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Hotel name"
// @Param description formData string false "Hotel description"
// @Param address formData string true "Hotel address"
// @Param city formData string true "Hotel city"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param commission_rate formData number false "Commission rate (0-1)"
// @Param image formData file false "Hotel image"
// @Success 201 {object} response.Message "Hotel created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateHotelRequest{
		Name:        request.FormValue("name"),
		Description: request.FormValue("description"),
		Address:     request.FormValue("address"),
		City:        request.FormValue("city"),
		Amenities:   request.Form["amenities"],
	}

	if latStr := request.FormValue("latitude"); latStr != "" {
		if lat, err := shared.ConvertStringToFloat(latStr); err == nil {
			req.Latitude = lat
		}
	}

	if lonStr := request.FormValue("longitude"); lonStr != "" {
		if lon, err := shared.ConvertStringToFloat(lonStr); err == nil {
			req.Longitude = lon
		}
	}

	if rateStr := request.FormValue("commission_rate"); rateStr != "" {
		if rate, err := shared.ConvertStringToFloat(rateStr); err == nil {
			req.CommissionRate = rate
		}
	}

	if activeStr := request.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Hotel created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Hotel created successfully")
}

// GetHotels retrieves all hotels based on query parameters.
// @Summary Get all hotels
// @Description Retrieve all hotels with optional filtering and pagination.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by city"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} dto.GetHotelsResponse "List of hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := handler.buildFilter(r)

	hotels, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetAvailableHotels retrieves hotels with rooms free for a stay window.
// @Summary Get available hotels
// @Description Retrieve hotels that still have rooms free between check-in and check-out.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param check_in_date query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out_date query string true "Check-out date (YYYY-MM-DD)"
// @Param city query string false "Filter by city"
// @Success 200 {object} dto.GetHotelsResponse "Available hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/available [get]
func (handler *Handler) GetAvailableHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableHotels")
	defer scope.End()

	checkIn, errIn := timezone.Parse(stayDateLayout, r.URL.Query().Get("check_in_date"))
	checkOut, errOut := timezone.Parse(stayDateLayout, r.URL.Query().Get("check_out_date"))

	if errIn != nil || errOut != nil {
		response.WithMessage(w, http.StatusBadRequest, "check_in_date and check_out_date query parameters are required (YYYY-MM-DD)")

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	stay := ledger.Stay{CheckIn: checkIn, CheckOut: checkOut}

	hotels, err := handler.service.GetAvailable(ctx, queryParams, handler.buildFilter(r), stay)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetNearbyHotels retrieves hotels within a radius of a coordinate.
// @Summary Get nearby hotels
// @Description Retrieve hotels within radius_km of the given coordinate.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Radius in kilometers (default 5)"
// @Success 200 {object} dto.GetHotelsResponse "Nearby hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/nearby [get]
func (handler *Handler) GetNearbyHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNearbyHotels")
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

	hotels, err := handler.service.GetNearby(ctx, lat, lon, radiusKm)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get nearby hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Nearby hotels retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotelByID retrieves a hotel with its room types.
// @Summary Get a hotel by ID
// @Description Retrieve a hotel and its room types by its unique identifier.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} dto.HotelResponse "Hotel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	hotel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotel)
}

// UpdateHotel updates an existing hotel by its ID.
// @Summary Update a hotel by ID
// @Description Update the details of an existing hotel.
// @Tags Hotel
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Message "Hotel updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateHotelRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		City:        r.FormValue("city"),
	}

	if rateStr := r.FormValue("commission_rate"); rateStr != "" {
		if rate, err := shared.ConvertStringToFloat(rateStr); err == nil {
			req.CommissionRate = &rate
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel updated successfully")

	response.WithMessage(w, http.StatusOK, "Hotel updated successfully")
}

// DeleteHotel deletes a hotel by its ID.
// @Summary Delete a hotel by ID
// @Description Delete a hotel and its stored image.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Message "Hotel deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel deleted successfully")

	response.WithMessage(w, http.StatusOK, "Hotel deleted successfully")
}

// RateHotel records a guest rating for a hotel.
// @Summary Rate a hotel
// @Description Record a 1-5 rating that feeds the hotel's running average.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.RateHotelRequest true "Rate Hotel Request"
// @Success 200 {object} response.Message "Hotel rated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/ratings [post]
// @Security BearerAuth
func (handler *Handler) RateHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RateHotel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RateHotelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Rate(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to rate hotel")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel rated successfully")

	response.WithMessage(w, http.StatusOK, "Hotel rated successfully")
}

// AddRoomType adds a room type to a hotel.
// @Summary Add a room type
// @Description Add a room type with nominal inventory and nightly price to a hotel.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body dto.CreateRoomTypeRequest true "Create Room Type Request"
// @Success 201 {object} response.Message "Room type added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/room-types [post]
// @Security BearerAuth
func (handler *Handler) AddRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddRoomType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateRoomTypeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddRoomType(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add room type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room type added successfully")

	response.WithMessage(w, http.StatusCreated, "Room type added successfully")
}

// UpdateRoomType updates a hotel's room type.
// @Summary Update a room type
// @Description Update price or nominal inventory of a hotel's room type.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param roomType path string true "Room type"
// @Param request body dto.UpdateRoomTypeRequest true "Update Room Type Request"
// @Success 200 {object} response.Message "Room type updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/room-types/{roomType} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	roomType := chi.URLParam(r, "roomType")

	req := dto.UpdateRoomTypeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRoomType(ctx, req, id, roomType); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room type updated successfully")

	response.WithMessage(w, http.StatusOK, "Room type updated successfully")
}

// DeleteRoomType removes a room type from a hotel.
// @Summary Delete a room type
// @Description Remove a room type from a hotel.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param roomType path string true "Room type"
// @Success 200 {object} response.Message "Room type deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/room-types/{roomType} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	roomType := chi.URLParam(r, "roomType")

	if err := handler.service.DeleteRoomType(ctx, id, roomType); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room type deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room type deleted successfully")
}

func (handler *Handler) buildFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if city := r.URL.Query().Get(model.FieldCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
