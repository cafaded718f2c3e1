package model

import (
	"resort/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImages      = "images"
)

// Package is a bundled stay priced per room per night. Images holds image store references in display order.
type Package struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Price       float64        `db:"price"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
