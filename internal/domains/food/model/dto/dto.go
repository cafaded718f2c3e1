package dto

import (
	"math"
	"resort/internal/domains/food/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Available   *bool   `json:"available"`
}

func (c *CreateItemRequest) ToModel(user string) model.Item {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Item{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Available:   available,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateItemRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=500"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Available   *bool    `db:"available"   json:"available"`
}

func (u UpdateItemRequest) IsEmpty() bool {
	return u == UpdateItemRequest{}
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(m model.Item) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.Price = m.Price
	r.Available = m.Available
	r.Metadata.FromModel(m.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}

type OrderLineRequest struct {
	FoodItemID string `json:"food_item_id" validate:"required"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
}

type CreateOrderRequest struct {
	RoomID             string             `json:"room_id"              validate:"required"`
	AssignedEmployeeID string             `json:"assigned_employee_id" validate:"omitempty"`
	Items              []OrderLineRequest `json:"items"                validate:"required,min=1,dive"`
}

// FoodItemIDs returns the distinct menu entries referenced by the order.
func (c *CreateOrderRequest) FoodItemIDs() []string {
	seen := make(map[string]bool, len(c.Items))
	ids := make([]string, 0, len(c.Items))

	for _, line := range c.Items {
		if seen[line.FoodItemID] {
			continue
		}

		seen[line.FoodItemID] = true
		ids = append(ids, line.FoodItemID)
	}

	return ids
}

// ToModels prices every line from items, which must hold each referenced menu entry.
func (c *CreateOrderRequest) ToModels(user string, items map[string]model.Item) (model.Order, []model.OrderItem) {
	now := timezone.Now()
	order := model.Order{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		Status:        model.OrderStatusActive,
		BillingStatus: constant.BillingStatusUnbilled,
		Metadata:      gModel.NewMetadata(user, now),
	}

	if c.AssignedEmployeeID != constant.Empty {
		employee := c.AssignedEmployeeID
		order.AssignedEmployeeID = &employee
	}

	lines := make([]model.OrderItem, len(c.Items))
	amount := 0.0

	for i, line := range c.Items {
		amount += float64(line.Quantity) * items[line.FoodItemID].Price
		lines[i] = model.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			FoodItemID: line.FoodItemID,
			Quantity:   line.Quantity,
			Metadata:   gModel.NewMetadata(user, now),
		}
	}

	order.Amount = math.Round(amount*100) / 100

	return order, lines
}

type OrderItemResponse struct {
	FoodItemID string  `json:"food_item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type OrderResponse struct {
	ID                 string              `json:"id"`
	RoomID             string              `json:"room_id"`
	RoomNumber         string              `json:"room_number"`
	Amount             float64             `json:"amount"`
	AssignedEmployeeID string              `json:"assigned_employee_id"`
	Status             string              `json:"status"`
	BillingStatus      string              `json:"billing_status"`
	Items              []OrderItemResponse `json:"items"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(m model.Order, lines []model.OrderItemDetail) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.Amount = m.Amount
	r.AssignedEmployeeID = constant.Empty
	r.Status = m.Status
	r.BillingStatus = m.BillingStatus

	if m.AssignedEmployeeID != nil {
		r.AssignedEmployeeID = *m.AssignedEmployeeID
	}

	r.Items = make([]OrderItemResponse, len(lines))
	for i, line := range lines {
		r.Items[i] = OrderItemResponse{
			FoodItemID: line.FoodItemID,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  line.ItemPrice,
		}
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

// FromModels attaches lines grouped by order id.
func (r *GetOrdersResponse) FromModels(models []model.Order, lines map[string][]model.OrderItemDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, m := range models {
		r.Orders[i].FromModel(m, lines[m.ID])
	}
}
