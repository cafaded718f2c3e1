package model

import (
	"math"
	"resort/shared/constant"
	"resort/shared/daterange"
	"resort/shared/model"
	"time"
)

const (
	TableName     = "package_bookings"
	TableRoomLink = "package_booking_rooms"
	EntityName    = "package_booking"
	EntityLink    = "package_booking_room"

	FieldID               = "id"
	FieldPackageID        = "package_id"
	FieldGuestName        = "guest_name"
	FieldGuestMobile      = "guest_mobile"
	FieldGuestEmail       = "guest_email"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldStatus           = "status"
	FieldIDCardImage      = "id_card_image"
	FieldGuestPhoto       = "guest_photo"
	FieldCheckedInBy      = "checked_in_by"
	FieldPackageBookingID = "package_booking_id"
	FieldRoomID           = "room_id"
)

var ActiveStatuses = []string{constant.BookingStatusBooked, constant.BookingStatusCheckedIn}

// PackageBooking is a stay sold as a package. The package title and price are joined in on read.
type PackageBooking struct {
	ID           string    `db:"id"`
	PackageID    string    `db:"package_id"`
	PackageTitle string    `db:"package_title" table:"packages" column:"title"`
	PackagePrice float64   `db:"package_price" table:"packages" column:"price"`
	GuestName    string    `db:"guest_name"`
	GuestMobile  string    `db:"guest_mobile"`
	GuestEmail   string    `db:"guest_email"`
	CheckIn      time.Time `db:"check_in"`
	CheckOut     time.Time `db:"check_out"`
	Adults       int       `db:"adults"`
	Children     int       `db:"children"`
	Status       string    `db:"status"`
	UserID       *string   `db:"user_id"`
	IDCardImage  *string   `db:"id_card_image"`
	GuestPhoto   *string   `db:"guest_photo"`
	CheckedInBy  *string   `db:"checked_in_by"`
	model.Metadata
}

func (PackageBooking) GetJoinQuery() string {
	return "JOIN packages ON packages.id = package_bookings.package_id"
}

func (b PackageBooking) Stay() daterange.DateRange {
	return daterange.DateRange{CheckIn: daterange.Truncate(b.CheckIn), CheckOut: daterange.Truncate(b.CheckOut)}
}

func (b PackageBooking) Active() bool {
	return b.Status == constant.BookingStatusBooked || b.Status == constant.BookingStatusCheckedIn
}

// Total is the package price charged for every room and night of the stay.
func (b PackageBooking) Total(rooms int) float64 {
	return math.Round(b.PackagePrice*float64(rooms)*float64(b.Stay().Nights())*100) / 100
}

type RoomLink struct {
	PackageBookingID string `db:"package_booking_id"`
	RoomID           string `db:"room_id"`
	model.Metadata
}

type LinkedRoom struct {
	PackageBookingID string  `db:"package_booking_id"`
	RoomID           string  `db:"room_id"`
	Number           string  `db:"number"             table:"rooms" column:"number"`
	Type             string  `db:"type"               table:"rooms" column:"type"`
	Price            float64 `db:"price"              table:"rooms" column:"price"`
}

func (LinkedRoom) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = package_booking_rooms.room_id"
}
