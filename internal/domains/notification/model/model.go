package model

import (
	"fmt"
	"time"
)

const (
	KindBooking = "booking"
	KindPackage = "package"

	ResortName = "Elysian Retreat"
)

type Room struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

// BookingConfirmation is the payload published on the booking confirmation topic.
type BookingConfirmation struct {
	BookingID    string    `json:"booking_id"`
	Kind         string    `json:"kind"`
	GuestName    string    `json:"guest_name"`
	GuestEmail   string    `json:"guest_email"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Rooms        []Room    `json:"rooms"`
	PackageTitle string    `json:"package_title,omitempty"`
}

func (c BookingConfirmation) Subject() string {
	if c.Kind == KindPackage {
		return fmt.Sprintf("Package Booking Confirmation #%s - %s", c.BookingID, ResortName)
	}

	return fmt.Sprintf("Booking Confirmation #%s - %s", c.BookingID, ResortName)
}

func (c BookingConfirmation) Title() string {
	if c.Kind == KindPackage && c.PackageTitle != "" {
		return "Package: " + c.PackageTitle
	}

	return "Room Booking"
}
