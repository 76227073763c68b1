package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"carnaval/infras/otel"
	"carnaval/infras/postgres"
	"carnaval/internal/domains/booking/ledger"
	"carnaval/internal/domains/booking/model"
	"carnaval/shared/constant"
	gDto "carnaval/shared/dto"
	"carnaval/shared/logger"
	gRepo "carnaval/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	AcquireStayLockTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string) error
	GetActiveOverlapping(ctx context.Context, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error)
	GetActiveOverlappingTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	return tx, nil
}

// AcquireStayLockTx serializes check-and-insert per hotel and room type for
// the lifetime of the transaction. Two concurrent requests for the last room
// cannot both pass the availability check.
func (repo *repositoryImpl) AcquireStayLockTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AcquireStayLockTx")
	defer scope.End()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", hotelID+":"+roomType); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to acquire stay lock: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetActiveOverlapping(ctx context.Context, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveOverlapping")
	defer scope.End()

	return repo.selectActiveOverlapping(ctx, repo.db.Read, hotelID, roomType, stay)
}

func (repo *repositoryImpl) GetActiveOverlappingTx(ctx context.Context, tx *sqlx.Tx, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveOverlappingTx")
	defer scope.End()

	return repo.selectActiveOverlapping(ctx, tx, hotelID, roomType, stay)
}

type selecter interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

var bookingColumns = strings.Join([]string{
	model.FieldID,
	model.FieldReference,
	model.FieldHotelID,
	model.FieldRoomType,
	model.FieldGuestName,
	model.FieldGuestEmail,
	model.FieldGuestPhone,
	model.FieldCheckInDate,
	model.FieldCheckOutDate,
	model.FieldRoomCount,
	model.FieldNights,
	model.FieldPricePerNight,
	model.FieldTotalAmount,
	model.FieldPlatformFee,
	model.FieldStatus,
	model.FieldPaymentStatus,
	constant.FieldCreatedBy,
	constant.FieldModifiedBy,
}, ", ")

// selectActiveOverlapping fetches the bookings that consume inventory for the
// stay window. The range test is strict on both ends so back-to-back stays do
// not block each other. An empty roomType spans all of the hotel's types.
func (repo *repositoryImpl) selectActiveOverlapping(ctx context.Context, runner selecter, hotelID, roomType string, stay ledger.Stay) ([]model.Booking, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ? AND %s IN (?) AND %s < ? AND %s > ?",
		bookingColumns,
		model.TableName,
		model.FieldHotelID,
		model.FieldStatus,
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
	)
	args := []interface{}{hotelID, model.ActiveStatuses(), stay.CheckOut, stay.CheckIn}

	if roomType != "" {
		query += fmt.Sprintf(" AND %s = ?", model.FieldRoomType)
		args = append(args, roomType)
	}

	query, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to build overlap query (%s): %w", model.EntityName, err)
	}

	var bookings []model.Booking

	if err := runner.SelectContext(ctx, &bookings, runner.Rebind(query), expandedArgs...); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get overlapping bookings (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}
