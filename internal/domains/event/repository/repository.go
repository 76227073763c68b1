package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"carnaval/infras/otel"
	"carnaval/infras/postgres"
	"carnaval/internal/domains/event/model"
	gDto "carnaval/shared/dto"
	gRepo "carnaval/shared/repository"
)

type Event interface {
	Insert(ctx context.Context, model model.Event) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Event, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Event]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
