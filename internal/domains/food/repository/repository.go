package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/food/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Item interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Order interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Order) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type OrderItem interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.OrderItem) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OrderItemDetail, error)
}

type itemRepository struct {
	gRepo.Repository[model.Item]
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemRepository{
		Repository: gRepo.NewRepository[model.Item](model.EntityItem, model.TableItem, model.FieldID, db, otel),
	}
}

type orderRepository struct {
	gRepo.Repository[model.Order]
}

func NewOrder(db *postgres.Connection, otel otel.Otel) Order {
	return &orderRepository{
		Repository: gRepo.NewRepository[model.Order](model.EntityOrder, model.TableOrder, model.FieldID, db, otel),
	}
}

// orderItemRepository writes plain lines and reads them back joined with the menu.
type orderItemRepository struct {
	lines   gRepo.Repository[model.OrderItem]
	details gRepo.Repository[model.OrderItemDetail]
}

func NewOrderItem(db *postgres.Connection, otel otel.Otel) OrderItem {
	return &orderItemRepository{
		lines:   gRepo.NewRepository[model.OrderItem](model.EntityOrderItem, model.TableOrderItem, model.FieldID, db, otel),
		details: gRepo.NewRepository[model.OrderItemDetail](model.EntityOrderItem, model.TableOrderItem, model.FieldID, db, otel),
	}
}

func (r *orderItemRepository) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.OrderItem) error {
	return r.lines.InsertBulkTx(ctx, tx, models)
}

func (r *orderItemRepository) GetAll(
	ctx context.Context,
	params gDto.QueryParams,
	filter gDto.FilterGroup,
	columns ...string,
) ([]model.OrderItemDetail, error) {
	return r.details.GetAll(ctx, params, filter, columns...)
}

func FilterItemsByIDs(ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableItem,
			},
		},
	}
}

func FilterLinesByOrderIDs(ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOrderID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableOrderItem,
			},
		},
	}
}
