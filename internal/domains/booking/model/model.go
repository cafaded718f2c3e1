package model

import (
	"resort/shared/constant"
	"resort/shared/daterange"
	"resort/shared/model"
	"time"
)

const (
	TableName     = "bookings"
	TableRoomLink = "booking_rooms"
	EntityName    = "booking"
	EntityLink    = "booking_room"

	FieldID          = "id"
	FieldGuestName   = "guest_name"
	FieldGuestMobile = "guest_mobile"
	FieldGuestEmail  = "guest_email"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldAdults      = "adults"
	FieldChildren    = "children"
	FieldStatus      = "status"
	FieldUserID      = "user_id"
	FieldIDCardImage = "id_card_image"
	FieldGuestPhoto  = "guest_photo"
	FieldCheckedInBy = "checked_in_by"
	FieldBookingID   = "booking_id"
	FieldRoomID      = "room_id"
)

// ActiveStatuses are the statuses that hold rooms.
var ActiveStatuses = []string{constant.BookingStatusBooked, constant.BookingStatusCheckedIn}

type Booking struct {
	ID          string    `db:"id"`
	GuestName   string    `db:"guest_name"`
	GuestMobile string    `db:"guest_mobile"`
	GuestEmail  string    `db:"guest_email"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	Adults      int       `db:"adults"`
	Children    int       `db:"children"`
	Status      string    `db:"status"`
	UserID      *string   `db:"user_id"`
	IDCardImage *string   `db:"id_card_image"`
	GuestPhoto  *string   `db:"guest_photo"`
	CheckedInBy *string   `db:"checked_in_by"`
	model.Metadata
}

func (b Booking) Stay() daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.Truncate(b.CheckIn), CheckOut: daterange.Truncate(b.CheckOut)}
}

func (b Booking) Active() bool {
	return b.Status == constant.BookingStatusBooked || b.Status == constant.BookingStatusCheckedIn
}

type RoomLink struct {
	BookingID string `db:"booking_id"`
	RoomID    string `db:"room_id"`
	model.Metadata
}

// LinkedRoom is a link row joined with the room it points to.
type LinkedRoom struct {
	BookingID string  `db:"booking_id"`
	RoomID    string  `db:"room_id"`
	Number    string  `db:"number"     table:"rooms" column:"number"`
	Type      string  `db:"type"       table:"rooms" column:"type"`
	Price     float64 `db:"price"      table:"rooms" column:"price"`
	Adults    int     `db:"adults"     table:"rooms" column:"adults"`
	Children  int     `db:"children"   table:"rooms" column:"children"`
}

func (LinkedRoom) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = booking_rooms.room_id"
}
