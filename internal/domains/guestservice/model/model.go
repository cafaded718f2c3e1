package model

import (
	"resort/shared/model"
	"time"
)

const (
	TableService    = "services"
	TableAssignment = "assigned_services"

	EntityService    = "service"
	EntityAssignment = "assigned_service"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldCharges       = "charges"
	FieldServiceID     = "service_id"
	FieldEmployeeID    = "employee_id"
	FieldRoomID        = "room_id"
	FieldAssignedAt    = "assigned_at"
	FieldStatus        = "status"
	FieldBillingStatus = "billing_status"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an assignment may move from one lifecycle status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

type Service struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Charges     float64 `db:"charges"`
	model.Metadata
}

// Assignment is a chargeable service booked for a room and handed to a staff member.
type Assignment struct {
	ID            string    `db:"id"`
	ServiceID     string    `db:"service_id"`
	ServiceName   string    `db:"service_name"  table:"services" column:"name"`
	Charges       float64   `db:"charges"       table:"services" column:"charges"`
	EmployeeID    string    `db:"employee_id"`
	EmployeeName  string    `db:"employee_name" table:"users"    column:"full_name"`
	RoomID        string    `db:"room_id"`
	RoomNumber    string    `db:"room_number"   table:"rooms"    column:"number"`
	AssignedAt    time.Time `db:"assigned_at"`
	Status        string    `db:"status"`
	BillingStatus string    `db:"billing_status"`
	model.Metadata
}

func (Assignment) GetJoinQuery() string {
	return "JOIN services ON services.id = assigned_services.service_id " +
		"JOIN users ON users.id = assigned_services.employee_id " +
		"JOIN rooms ON rooms.id = assigned_services.room_id"
}
