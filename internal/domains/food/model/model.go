package model

import (
	"resort/shared/model"
)

const (
	TableItem      = "food_items"
	TableOrder     = "food_orders"
	TableOrderItem = "food_order_items"

	EntityItem      = "food_item"
	EntityOrder     = "food_order"
	EntityOrderItem = "food_order_item"

	FieldID                 = "id"
	FieldName               = "name"
	FieldDescription        = "description"
	FieldPrice              = "price"
	FieldAvailable          = "available"
	FieldRoomID             = "room_id"
	FieldAmount             = "amount"
	FieldAssignedEmployeeID = "assigned_employee_id"
	FieldStatus             = "status"
	FieldBillingStatus      = "billing_status"
	FieldOrderID            = "order_id"
	FieldFoodItemID         = "food_item_id"
	FieldQuantity           = "quantity"
)

const (
	OrderStatusActive    = "active"
	OrderStatusCancelled = "cancelled"
)

// Item is a menu entry and the unit price source for food charges.
type Item struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Available   bool    `db:"available"`
	model.Metadata
}

// Order is a room charge. Amount is fixed when the order is placed.
type Order struct {
	ID                 string  `db:"id"`
	RoomID             string  `db:"room_id"`
	RoomNumber         string  `db:"room_number"          table:"rooms" column:"number"`
	Amount             float64 `db:"amount"`
	AssignedEmployeeID *string `db:"assigned_employee_id"`
	Status             string  `db:"status"`
	BillingStatus      string  `db:"billing_status"`
	model.Metadata
}

func (Order) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = food_orders.room_id"
}

type OrderItem struct {
	ID         string `db:"id"`
	OrderID    string `db:"order_id"`
	FoodItemID string `db:"food_item_id"`
	Quantity   int    `db:"quantity"`
	model.Metadata
}

// OrderItemDetail is an order line joined with its menu entry.
type OrderItemDetail struct {
	OrderItem
	ItemName  string  `db:"item_name"  table:"food_items" column:"name"`
	ItemPrice float64 `db:"item_price" table:"food_items" column:"price"`
}

func (OrderItemDetail) GetJoinQuery() string {
	return "LEFT JOIN food_items ON food_items.id = food_order_items.food_item_id"
}
