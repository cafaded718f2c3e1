package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/internal/domains/checkout/model"
	gDto "resort/shared/dto"
	gRepo "resort/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Checkout interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Checkout) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Checkout, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repository struct {
	gRepo.Repository[model.Checkout]
}

func New(db *postgres.Connection, otel otel.Otel) Checkout {
	return &repository{
		Repository: gRepo.NewRepository[model.Checkout](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
