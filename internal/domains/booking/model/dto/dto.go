package dto

import (
	"resort/internal/domains/booking/model"
	"resort/shared"
	"resort/shared/constant"
	"resort/shared/daterange"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/imagestore"
	gModel "resort/shared/model"
	"resort/shared/timezone"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomIDs     []string `json:"room_ids"     validate:"required,min=1,dive,required"`
	GuestName   string   `json:"guest_name"   validate:"required,max=100"`
	GuestMobile string   `json:"guest_mobile" validate:"omitempty,max=20"`
	GuestEmail  string   `json:"guest_email"  validate:"omitempty,email,max=100"`
	CheckIn     string   `json:"check_in"     validate:"required,datetime=2006-01-02"`
	CheckOut    string   `json:"check_out"    validate:"required,datetime=2006-01-02"`
	Adults      int      `json:"adults"       validate:"omitempty,min=1"`
	Children    int      `json:"children"     validate:"omitempty,min=0"`
}

// Stay parses the requested dates. A stay that does not end after it starts is rejected.
func (c *CreateBookingRequest) Stay() (daterange.DateRange, error) {
	stay, err := daterange.Parse(c.CheckIn, c.CheckOut)
	if err != nil {
		return daterange.DateRange{}, failure.BadRequest(err)
	}

	return stay, nil
}

func (c *CreateBookingRequest) Normalize() {
	c.GuestName = strings.TrimSpace(c.GuestName)
	c.GuestEmail = strings.ToLower(strings.TrimSpace(c.GuestEmail))
	c.GuestMobile = strings.TrimSpace(c.GuestMobile)

	if c.Adults == 0 {
		c.Adults = 1
	}
}

func (c *CreateBookingRequest) ToModel(user, guestID string, stay daterange.DateRange) model.Booking {
	booking := model.Booking{
		ID:          uuid.NewString(),
		GuestName:   c.GuestName,
		GuestMobile: c.GuestMobile,
		GuestEmail:  c.GuestEmail,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Adults:      c.Adults,
		Children:    c.Children,
		Status:      constant.BookingStatusBooked,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}

	if guestID != constant.Empty {
		booking.UserID = &guestID
	}

	return booking
}

func (c *CreateBookingRequest) ToLinks(bookingID, user string) []model.RoomLink {
	ids := slices.Clone(c.RoomIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	now := timezone.Now()

	links := make([]model.RoomLink, len(ids))
	for i, id := range ids {
		links[i] = model.RoomLink{
			BookingID: bookingID,
			RoomID:    id,
			Metadata:  gModel.NewMetadata(user, now),
		}
	}

	return links
}

type ExtendBookingRequest struct {
	NewCheckout string `json:"new_checkout" validate:"required,datetime=2006-01-02"`
}

type RoomResponse struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

type BookingResponse struct {
	ID          string         `json:"id"`
	GuestName   string         `json:"guest_name"`
	GuestMobile string         `json:"guest_mobile"`
	GuestEmail  string         `json:"guest_email"`
	CheckIn     string         `json:"check_in"`
	CheckOut    string         `json:"check_out"`
	Adults      int            `json:"adults"`
	Children    int            `json:"children"`
	Status      string         `json:"status"`
	UserID      string         `json:"user_id"`
	IDCardImage string         `json:"id_card_image_url"`
	GuestPhoto  string         `json:"guest_photo_url"`
	CheckedInBy string         `json:"checked_in_by"`
	Rooms       []RoomResponse `json:"rooms"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking, rooms []model.LinkedRoom) {
	r.ID = m.ID
	r.GuestName = m.GuestName
	r.GuestMobile = m.GuestMobile
	r.GuestEmail = m.GuestEmail
	r.CheckIn = m.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = m.CheckOut.Format(constant.DateOnlyFormat)
	r.Adults = m.Adults
	r.Children = m.Children
	r.Status = m.Status
	r.UserID = deref(m.UserID)
	r.IDCardImage = imagestore.URL(deref(m.IDCardImage))
	r.GuestPhoto = imagestore.URL(deref(m.GuestPhoto))
	r.CheckedInBy = deref(m.CheckedInBy)
	r.Metadata.FromModel(m.Metadata)

	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i] = RoomResponse{
			ID:     room.RoomID,
			Number: room.Number,
			Type:   room.Type,
			Price:  room.Price,
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, rooms map[string][]model.LinkedRoom, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m, rooms[m.ID])
	}
}

func deref(s *string) string {
	if s == nil {
		return constant.Empty
	}

	return *s
}
