package dto

import (
	"resort/internal/domains/checkout/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const MessageCheckoutSuccess = "Checkout successful"

type CheckoutRequest struct {
	PaymentMethod  string  `json:"payment_method"  validate:"required,max=50"`
	DiscountAmount float64 `json:"discount_amount" validate:"omitempty"`
}

type FoodItemResponse struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type ServiceItemResponse struct {
	ServiceName string  `json:"service_name"`
	Charges     float64 `json:"charges"`
}

type ChargesResponse struct {
	RoomCharges    float64               `json:"room_charges"`
	FoodCharges    float64               `json:"food_charges"`
	ServiceCharges float64               `json:"service_charges"`
	PackageCharges float64               `json:"package_charges"`
	FoodItems      []FoodItemResponse    `json:"food_items"`
	ServiceItems   []ServiceItemResponse `json:"service_items"`
	TotalDue       float64               `json:"total_due"`
}

type BillResponse struct {
	GuestName      string          `json:"guest_name"`
	RoomNumbers    []string        `json:"room_numbers"`
	NumberOfGuests int             `json:"number_of_guests"`
	StayNights     int             `json:"stay_nights"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Charges        ChargesResponse `json:"charges"`
}

func (r *BillResponse) FromModel(bill model.Bill) {
	r.GuestName = bill.Stay.GuestName
	r.RoomNumbers = RoomNumbers(bill.Stay.Rooms)
	r.NumberOfGuests = max(bill.Stay.Guests, 1)
	r.StayNights = bill.Nights
	r.CheckIn = bill.Stay.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = bill.Stay.CheckOut.Format(constant.DateOnlyFormat)

	r.Charges = ChargesResponse{
		RoomCharges:    bill.RoomCharges,
		FoodCharges:    bill.FoodCharges,
		ServiceCharges: bill.ServiceCharges,
		PackageCharges: bill.PackageCharges,
		FoodItems:      make([]FoodItemResponse, len(bill.FoodLines)),
		ServiceItems:   make([]ServiceItemResponse, len(bill.ServiceLines)),
		TotalDue:       bill.TotalDue(),
	}

	for i, line := range bill.FoodLines {
		r.Charges.FoodItems[i] = FoodItemResponse{ItemName: line.ItemName, Quantity: line.Quantity, Amount: line.Amount}
	}

	for i, line := range bill.ServiceLines {
		r.Charges.ServiceItems[i] = ServiceItemResponse{ServiceName: line.ServiceName, Charges: line.Charges}
	}
}

// RoomNumbers returns the numbers of the rooms in ascending order.
func RoomNumbers(rooms []model.Room) []string {
	numbers := make([]string, len(rooms))
	for i, room := range rooms {
		numbers[i] = room.Number
	}

	sort.Strings(numbers)

	return numbers
}

// ToModel snapshots a settled bill.
func (c *CheckoutRequest) ToModel(bill model.Bill, tax, discount, grandTotal float64, user string) model.Checkout {
	now := timezone.Now()

	checkout := model.Checkout{
		ID:             uuid.NewString(),
		RoomTotal:      bill.RoomCharges,
		FoodTotal:      bill.FoodCharges,
		ServiceTotal:   bill.ServiceCharges,
		PackageTotal:   bill.PackageCharges,
		TaxAmount:      tax,
		DiscountAmount: discount,
		GrandTotal:     grandTotal,
		PaymentMethod:  strings.TrimSpace(c.PaymentMethod),
		PaymentStatus:  model.PaymentStatusPaid,
		GuestName:      bill.Stay.GuestName,
		RoomNumber:     strings.Join(RoomNumbers(bill.Stay.Rooms), ", "),
		CheckoutDate:   now,
		Metadata:       gModel.NewMetadata(user, now),
	}

	if bill.Stay.IsPackage() {
		checkout.PackageBookingID = &bill.Stay.PackageBookingID
	} else {
		checkout.BookingID = &bill.Stay.BookingID
	}

	return checkout
}

type CheckoutResponse struct {
	Message      string  `json:"message"`
	CheckoutID   string  `json:"checkout_id"`
	GrandTotal   float64 `json:"grand_total"`
	CheckoutDate string  `json:"checkout_date"`
}

func (r *CheckoutResponse) FromModel(m model.Checkout) {
	r.Message = MessageCheckoutSuccess
	r.CheckoutID = m.ID
	r.GrandTotal = m.GrandTotal
	r.CheckoutDate = timezone.Format(m.CheckoutDate, constant.DateFormat)
}

type CheckoutHistoryResponse struct {
	ID               string  `json:"id"`
	BookingID        string  `json:"booking_id,omitempty"`
	PackageBookingID string  `json:"package_booking_id,omitempty"`
	RoomTotal        float64 `json:"room_total"`
	FoodTotal        float64 `json:"food_total"`
	ServiceTotal     float64 `json:"service_total"`
	PackageTotal     float64 `json:"package_total"`
	TaxAmount        float64 `json:"tax_amount"`
	DiscountAmount   float64 `json:"discount_amount"`
	GrandTotal       float64 `json:"grand_total"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentStatus    string  `json:"payment_status"`
	GuestName        string  `json:"guest_name"`
	RoomNumber       string  `json:"room_number"`
	CheckoutDate     string  `json:"checkout_date"`
	gDto.Metadata
}

func (r *CheckoutHistoryResponse) FromModel(m model.Checkout) {
	r.ID = m.ID
	if m.BookingID != nil {
		r.BookingID = *m.BookingID
	}

	if m.PackageBookingID != nil {
		r.PackageBookingID = *m.PackageBookingID
	}

	r.RoomTotal = m.RoomTotal
	r.FoodTotal = m.FoodTotal
	r.ServiceTotal = m.ServiceTotal
	r.PackageTotal = m.PackageTotal
	r.TaxAmount = m.TaxAmount
	r.DiscountAmount = m.DiscountAmount
	r.GrandTotal = m.GrandTotal
	r.PaymentMethod = m.PaymentMethod
	r.PaymentStatus = m.PaymentStatus
	r.GuestName = m.GuestName
	r.RoomNumber = m.RoomNumber
	r.CheckoutDate = timezone.Format(m.CheckoutDate, constant.DateFormat)
	r.Metadata.FromModel(m.Metadata)
}

type GetCheckoutsResponse struct {
	Checkouts []CheckoutHistoryResponse `json:"checkouts"`
	TotalPage int                       `json:"total_page"`
	TotalData int                       `json:"total_data"`
}

func (r *GetCheckoutsResponse) FromModels(models []model.Checkout, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Checkouts = make([]CheckoutHistoryResponse, len(models))
	for i, m := range models {
		r.Checkouts[i].FromModel(m)
	}
}

type ActiveRoomResponse struct {
	Number    string `json:"number"`
	GuestName string `json:"guest_name"`
}

func FromActiveRooms(rooms []model.ActiveRoom) []ActiveRoomResponse {
	res := make([]ActiveRoomResponse, len(rooms))
	for i, room := range rooms {
		res[i] = ActiveRoomResponse{Number: room.Number, GuestName: room.GuestName}
	}

	return res
}
