package dto

import (
	"resort/internal/domains/guestservice/model"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	gModel "resort/shared/model"
	"resort/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Charges     float64 `json:"charges"     validate:"required,gt=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Charges:     c.Charges,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateServiceRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=500"`
	Charges     *float64 `db:"charges"     json:"charges"     validate:"omitempty,gt=0"`
}

func (u UpdateServiceRequest) IsEmpty() bool {
	return u == UpdateServiceRequest{}
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Charges     float64 `json:"charges"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.Charges = m.Charges
	r.Metadata.FromModel(m.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, m := range models {
		r.Services[i].FromModel(m)
	}
}

type AssignRequest struct {
	ServiceID  string `json:"service_id"  validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	RoomID     string `json:"room_id"     validate:"required"`
}

func (a *AssignRequest) ToModel(user string) model.Assignment {
	now := timezone.Now()

	return model.Assignment{
		ID:            uuid.NewString(),
		ServiceID:     a.ServiceID,
		EmployeeID:    a.EmployeeID,
		RoomID:        a.RoomID,
		AssignedAt:    now,
		Status:        model.StatusPending,
		BillingStatus: constant.BillingStatusUnbilled,
		Metadata:      gModel.NewMetadata(user, now),
	}
}

type UpdateAssignmentRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"service_id"`
	ServiceName   string  `json:"service_name"`
	Charges       float64 `json:"charges"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	AssignedAt    string  `json:"assigned_at"`
	Status        string  `json:"status"`
	BillingStatus string  `json:"billing_status"`
	gDto.Metadata
}

func (r *AssignmentResponse) FromModel(m model.Assignment) {
	r.ID = m.ID
	r.ServiceID = m.ServiceID
	r.ServiceName = m.ServiceName
	r.Charges = m.Charges
	r.EmployeeID = m.EmployeeID
	r.EmployeeName = m.EmployeeName
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.AssignedAt = m.AssignedAt.Format(constant.DateFormat)
	r.Status = m.Status
	r.BillingStatus = m.BillingStatus
	r.Metadata.FromModel(m.Metadata)
}

type GetAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetAssignmentsResponse) FromModels(models []model.Assignment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Assignments = make([]AssignmentResponse, len(models))
	for i, m := range models {
		r.Assignments[i].FromModel(m)
	}
}
