package model

import (
	"resort/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "roles"
	EntityName = "role"

	FieldID          = "id"
	FieldName        = "name"
	FieldPermissions = "permissions"
)

type Role struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Permissions pq.StringArray `db:"permissions"`
	model.Metadata
}
