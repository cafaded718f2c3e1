package model

import "resort/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldType     = "type"
	FieldPrice    = "price"
	FieldStatus   = "status"
	FieldAdults   = "adults"
	FieldChildren = "children"
	FieldImageURL = "image_url"
)

const (
	DefaultAdults   = 2
	DefaultChildren = 0
)

// Room is a bookable unit. Status holds the operator set base status only,
// the status shown to clients is derived from bookings on every read.
type Room struct {
	ID       string  `db:"id"`
	Number   string  `db:"number"`
	Type     string  `db:"type"`
	Price    float64 `db:"price"`
	Status   string  `db:"status"`
	Adults   int     `db:"adults"`
	Children int     `db:"children"`
	ImageURL *string `db:"image_url"`
	model.Metadata
}

func IDs(rooms []Room) []string {
	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	return ids
}
