package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"carnaval/infras/otel"
	"carnaval/infras/postgres"
	"carnaval/internal/domains/hotel/model"
	"carnaval/shared"
	gDto "carnaval/shared/dto"
	gRepo "carnaval/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	InsertRoomType(ctx context.Context, model model.RoomType) error
	GetRoomType(ctx context.Context, hotelID, roomType string) (model.RoomType, error)
	GetRoomTypes(ctx context.Context, hotelID string) ([]model.RoomType, error)
	UpdateRoomType(ctx context.Context, req map[string]any, id string) error
	DeleteRoomType(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	roomTypes gRepo.Repository[model.RoomType]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		roomTypes:  gRepo.NewRepository[model.RoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldRoomTypeID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) InsertRoomType(ctx context.Context, model model.RoomType) error {
	return repo.roomTypes.Insert(ctx, model)
}

func (repo *repositoryImpl) GetRoomType(ctx context.Context, hotelID, roomType string) (model.RoomType, error) {
	return repo.roomTypes.Get(ctx, roomTypeFilter(hotelID, roomType))
}

func (repo *repositoryImpl) GetRoomTypes(ctx context.Context, hotelID string) ([]model.RoomType, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHotelID,
				Value:    hotelID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomTypeTableName,
			},
		},
	}

	return repo.roomTypes.GetAll(ctx, gDto.QueryParams{}, filter)
}

func (repo *repositoryImpl) UpdateRoomType(ctx context.Context, req map[string]any, id string) error {
	return repo.roomTypes.Update(ctx, req, shared.FilterByID(id, model.FieldRoomTypeID, model.RoomTypeTableName))
}

func (repo *repositoryImpl) DeleteRoomType(ctx context.Context, id string) error {
	return repo.roomTypes.Delete(ctx, shared.FilterByID(id, model.FieldRoomTypeID, model.RoomTypeTableName))
}

func roomTypeFilter(hotelID, roomType string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldHotelID,
				Value:    hotelID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomTypeTableName,
			},
			gDto.Filter{
				Field:    model.FieldRoomType,
				Value:    roomType,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomTypeTableName,
			},
		},
	}
}
