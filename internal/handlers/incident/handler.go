package incident

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"carnaval/infras/otel"
	"carnaval/internal/domains/incident/model"
	"carnaval/internal/domains/incident/model/dto"
	"carnaval/internal/domains/incident/service"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/validator"
	"carnaval/transport/http/middleware"
	"carnaval/transport/http/response"
)

type Handler struct {
	service    service.Incident
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Incident, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/incidents", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth, handler.middleware.RBAC)
		routerGroup.Post("/", handler.CreateIncident)
		routerGroup.Get("/", handler.GetIncidents)
		routerGroup.Get("/{id}", handler.GetIncidentByID)
		routerGroup.Patch("/{id}", handler.UpdateIncident)
		routerGroup.Patch("/{id}/status", handler.UpdateIncidentStatus)
		routerGroup.Delete("/{id}", handler.DeleteIncident)
	})
}

// CreateIncident reports a new incident during the festivities.
// @Summary Report a new incident
// @Description Report an incident with severity and optional event linkage.
// @Tags Incident
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Create Incident Request"
// @Success 201 {object} response.Message "Incident reported successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents [post]
// @Security BearerAuth
func (handler *Handler) CreateIncident(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIncident")
	defer scope.End()

	req := dto.CreateIncidentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create incident")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Incident reported successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Incident reported successfully")
}

// GetIncidents retrieves incidents based on query parameters.
// @Summary Get all incidents
// @Description Retrieve incidents with optional filtering and pagination.
// @Tags Incident
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param severity query string false "Filter by severity"
// @Param status query string false "Filter by status"
// @Param event_id query string false "Filter by event"
// @Success 200 {object} dto.GetIncidentsResponse "List of incidents"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents [get]
// @Security BearerAuth
func (handler *Handler) GetIncidents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIncidents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldSeverity, model.FieldStatus, model.FieldEventID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	incidents, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get incidents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incidents retrieved successfully")

	response.WithJSON(w, http.StatusOK, incidents)
}

// GetIncidentByID retrieves an incident by its ID.
// @Summary Get an incident by ID
// @Description Retrieve an incident by its unique identifier.
// @Tags Incident
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} dto.IncidentResponse "Incident details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetIncidentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIncidentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	incident, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get incident by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident retrieved successfully")

	response.WithJSON(w, http.StatusOK, incident)
}

// UpdateIncident updates an existing incident by its ID.
// @Summary Update an incident by ID
// @Description Update the details of an existing incident.
// @Tags Incident
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.UpdateIncidentRequest true "Update Incident Request"
// @Success 200 {object} response.Message "Incident updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateIncident")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateIncidentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update incident")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident updated successfully")

	response.WithMessage(w, http.StatusOK, "Incident updated successfully")
}

// UpdateIncidentStatus acknowledges or resolves an incident.
// @Summary Update incident status
// @Description Acknowledge or resolve an incident. Invalid transitions fail with 409.
// @Tags Incident
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.UpdateIncidentStatusRequest true "Update Incident Status Request"
// @Success 200 {object} response.Message "Incident status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateIncidentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateIncidentStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update incident status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident status updated successfully")

	response.WithMessage(w, http.StatusOK, "Incident status updated successfully")
}

// DeleteIncident deletes an incident by its ID.
// @Summary Delete an incident by ID
// @Description Delete an incident by its unique identifier.
// @Tags Incident
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} response.Message "Incident deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/incidents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteIncident")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete incident")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Incident deleted successfully")

	response.WithMessage(w, http.StatusOK, "Incident deleted successfully")
}
