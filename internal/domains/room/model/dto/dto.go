package dto

import (
	"resort/internal/domains/room/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/imagestore"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number   string  `json:"number"   validate:"required,max=20"`
	Type     string  `json:"type"     validate:"required,max=50"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Status   string  `json:"status"   validate:"omitempty,oneof=Available Maintenance"`
	Adults   *int    `json:"adults"   validate:"omitempty,min=1"`
	Children *int    `json:"children" validate:"omitempty,min=0"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := constant.RoomStatusAvailable
	if c.Status != constant.Empty {
		status = c.Status
	}

	adults := model.DefaultAdults
	if c.Adults != nil {
		adults = *c.Adults
	}

	children := model.DefaultChildren
	if c.Children != nil {
		children = *c.Children
	}

	return model.Room{
		ID:       uuid.NewString(),
		Number:   c.Number,
		Type:     c.Type,
		Price:    c.Price,
		Status:   status,
		Adults:   adults,
		Children: children,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Number   string   `db:"number"   json:"number"   validate:"omitempty,max=20"`
	Type     string   `db:"type"     json:"type"     validate:"omitempty,max=50"`
	Price    *float64 `db:"price"    json:"price"    validate:"omitempty,gt=0"`
	Status   string   `db:"status"   json:"status"   validate:"omitempty,oneof=Available Maintenance"`
	Adults   *int     `db:"adults"   json:"adults"   validate:"omitempty,min=1"`
	Children *int     `db:"children" json:"children" validate:"omitempty,min=0"`
}

type AvailableRoomsRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type RoomResponse struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
	Adults   int     `json:"adults"`
	Children int     `json:"children"`
	ImageURL string  `json:"image_url"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Status = model.Status
	r.Adults = model.Adults
	r.Children = model.Children
	r.ImageURL = constant.Empty

	if model.ImageURL != nil {
		r.ImageURL = imagestore.URL(*model.ImageURL)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Rooms = FromModels(models)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}
