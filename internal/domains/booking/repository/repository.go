package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/booking/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type RoomLink interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.RoomLink) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.LinkedRoom, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type roomLinkRepository struct {
	links gRepo.Repository[model.RoomLink]
	rooms gRepo.Repository[model.LinkedRoom]
}

func NewRoomLink(db *postgres.Connection, otel otel.Otel) RoomLink {
	return &roomLinkRepository{
		links: gRepo.NewRepository[model.RoomLink](model.EntityLink, model.TableRoomLink, model.FieldBookingID, db, otel),
		rooms: gRepo.NewRepository[model.LinkedRoom](model.EntityLink, model.TableRoomLink, model.FieldBookingID, db, otel),
	}
}

func (r *roomLinkRepository) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.RoomLink) error {
	return r.links.InsertBulkTx(ctx, tx, models)
}

func (r *roomLinkRepository) GetAll(
	ctx context.Context,
	params gDto.QueryParams,
	filter gDto.FilterGroup,
	columns ...string,
) ([]model.LinkedRoom, error) {
	return r.rooms.GetAll(ctx, params, filter, columns...)
}

func FilterByGuest(email, mobile string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldGuestEmail, Value: email, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldGuestMobile, Value: mobile, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// FilterDuplicate matches active bookings for the same guest and the same dates.
func FilterDuplicate(b model.Booking) gDto.FilterGroup {
	filter := FilterByGuest(b.GuestEmail, b.GuestMobile)
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: model.FieldCheckIn, Value: b.CheckIn, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckOut, Value: b.CheckOut, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
	)

	return filter
}

func FilterLinksByBookingIDs(ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableRoomLink,
			},
		},
	}
}
