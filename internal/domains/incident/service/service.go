package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"carnaval/config"
	"carnaval/infras/otel"
	"carnaval/internal/domains/incident/model"
	"carnaval/internal/domains/incident/model/dto"
	"carnaval/internal/domains/incident/repository"
	"carnaval/shared"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/failure"
	"carnaval/shared/timezone"
)

type Incident interface {
	Create(ctx context.Context, req dto.CreateIncidentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetIncidentsResponse, error)
	Get(ctx context.Context, id string) (dto.IncidentResponse, error)
	Update(ctx context.Context, req dto.UpdateIncidentRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateIncidentStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Incident
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Incident, cfg *config.Config, otel otel.Otel) Incident {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateIncidentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create incident")

		return fmt.Errorf("failed to create incident: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetIncidentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count incidents")

		return res, fmt.Errorf("failed to count incidents: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get incidents")

		return res, fmt.Errorf("failed to get incidents: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.IncidentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	incident, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get incident")

		return res, fmt.Errorf("failed to get incident: %w", err)
	}

	if incident.ID == "" {
		return res, failure.NotFound("incident not found") // nolint:wrapcheck
	}

	res.FromModel(incident)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateIncidentRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateIncidentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if incident exists")

		return fmt.Errorf("failed to check if incident exists: %w", err)
	}

	if !exist {
		log.Error().Msg("incident not found")

		return failure.NotFound("incident not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update incident")

		return fmt.Errorf("failed to update incident: %w", err)
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateIncidentStatusRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	incident, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get incident")

		return fmt.Errorf("failed to get incident: %w", err)
	}

	if incident.ID == "" {
		return failure.NotFound("incident not found") // nolint:wrapcheck
	}

	if !model.CanTransition(incident.Status, req.Status) {
		return failure.Conflict(fmt.Sprintf("cannot move incident from %s to %s", incident.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update incident status")

		return fmt.Errorf("failed to update incident status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if incident exists")

		return fmt.Errorf("failed to check if incident exists: %w", err)
	}

	if !exist {
		log.Error().Msg("incident not found")

		return failure.NotFound("incident not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete incident")

		return fmt.Errorf("failed to delete incident: %w", err)
	}

	return nil
}
