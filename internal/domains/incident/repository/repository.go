package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"carnaval/infras/otel"
	"carnaval/infras/postgres"
	"carnaval/internal/domains/incident/model"
	gDto "carnaval/shared/dto"
	gRepo "carnaval/shared/repository"
)

type Incident interface {
	Insert(ctx context.Context, model model.Incident) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Incident, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Incident, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Incident]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Incident {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Incident](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
