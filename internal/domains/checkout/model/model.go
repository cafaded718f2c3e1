package model

import (
	"math"
	"resort/shared/model"
	"time"
)

const (
	TableName  = "checkouts"
	EntityName = "checkout"

	FieldID               = "id"
	FieldBookingID        = "booking_id"
	FieldPackageBookingID = "package_booking_id"
	FieldGuestName        = "guest_name"
	FieldRoomNumber       = "room_number"
	FieldCheckoutDate     = "checkout_date"
	FieldGrandTotal       = "grand_total"

	PaymentStatusPaid = "Paid"
)

// Checkout is the immutable billing snapshot written when a stay ends.
// Exactly one of BookingID and PackageBookingID is set.
type Checkout struct {
	ID               string    `db:"id"`
	BookingID        *string   `db:"booking_id"`
	PackageBookingID *string   `db:"package_booking_id"`
	RoomTotal        float64   `db:"room_total"`
	FoodTotal        float64   `db:"food_total"`
	ServiceTotal     float64   `db:"service_total"`
	PackageTotal     float64   `db:"package_total"`
	TaxAmount        float64   `db:"tax_amount"`
	DiscountAmount   float64   `db:"discount_amount"`
	GrandTotal       float64   `db:"grand_total"`
	PaymentMethod    string    `db:"payment_method"`
	PaymentStatus    string    `db:"payment_status"`
	GuestName        string    `db:"guest_name"`
	RoomNumber       string    `db:"room_number"`
	CheckoutDate     time.Time `db:"checkout_date"`
	model.Metadata
}

// Stay is the booking a bill is computed for, regardless of whether it was a room or a package booking.
type Stay struct {
	BookingID        string
	PackageBookingID string
	GuestName        string
	Status           string
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	PackagePrice     float64
	Rooms            []Room
}

func (s Stay) IsPackage() bool {
	return s.PackageBookingID != ""
}

type Room struct {
	ID     string
	Number string
	Price  float64
}

type FoodLine struct {
	OrderID  string
	ItemName string
	Quantity int
	Amount   float64
}

type ServiceLine struct {
	AssignmentID string
	ServiceName  string
	Charges      float64
}

// Bill is the itemized amount due for a stay. Building one has no side effects.
type Bill struct {
	Stay           Stay
	Nights         int
	RoomCharges    float64
	PackageCharges float64
	FoodCharges    float64
	ServiceCharges float64
	FoodLines      []FoodLine
	ServiceLines   []ServiceLine
}

func (b Bill) TotalDue() float64 {
	return Round2(b.RoomCharges + b.PackageCharges + b.FoodCharges + b.ServiceCharges)
}

// Settle applies tax and discount to the amount due.
// A negative discount counts as zero and the grand total never drops below zero.
func (b Bill) Settle(taxRatePercent int, discount float64) (tax, appliedDiscount, grandTotal float64) {
	total := b.TotalDue()

	tax = Round2(total * float64(taxRatePercent) / 100)
	appliedDiscount = math.Max(0, discount)
	grandTotal = math.Max(0, Round2(total+tax-appliedDiscount))

	return tax, appliedDiscount, grandTotal
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ActiveRoom is an occupied room shown on the front desk board.
type ActiveRoom struct {
	Number    string
	GuestName string
}
