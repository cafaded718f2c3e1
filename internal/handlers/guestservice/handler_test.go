package guestservice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/guestservice/model/dto"
	serviceMocks "resort/internal/domains/guestservice/service/mocks"
	"resort/internal/handlers/guestservice"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(catalogue *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "create service",
			method: http.MethodPost,
			path:   "/services",
			body:   `{"name":"Laundry","description":"Same day","charges":12.5}`,
			setupMock: func(catalogue *serviceMocks.MockCatalogue, _ *serviceMocks.MockAssignments) {
				catalogue.EXPECT().
					Create(gomock.Any(), dto.CreateServiceRequest{Name: "Laundry", Description: "Same day", Charges: 12.5}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"Service created successfully"}`,
		},
		{
			name:       "create service without charges",
			method:     http.MethodPost,
			path:       "/services",
			body:       `{"name":"Laundry"}`,
			setupMock:  func(*serviceMocks.MockCatalogue, *serviceMocks.MockAssignments) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"charges is required"}`,
		},
		{
			name:   "list services by name",
			method: http.MethodGet,
			path:   "/services?name=laun&sort_by=charges&sort_dir=desc",
			setupMock: func(catalogue *serviceMocks.MockCatalogue, _ *serviceMocks.MockAssignments) {
				catalogue.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, "services.charges", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)
						assert.Equal(t, "(LOWER(services.name) LIKE LOWER(:name))", where)
						assert.Equal(t, map[string]any{"name": "%laun%"}, args)

						return dto.GetServicesResponse{Services: []dto.ServiceResponse{}}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"services":[],"total_page":0,"total_data":0}}`,
		},
		{
			name:   "list services ignores an unknown sort column",
			method: http.MethodGet,
			path:   "/services?sort_by=1&sort_dir=asc",
			setupMock: func(catalogue *serviceMocks.MockCatalogue, _ *serviceMocks.MockAssignments) {
				catalogue.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetServicesResponse, error) {
						assert.Equal(t, "services.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return dto.GetServicesResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "delete a service in use",
			method: http.MethodDelete,
			path:   "/services/svc-1",
			setupMock: func(catalogue *serviceMocks.MockCatalogue, _ *serviceMocks.MockAssignments) {
				catalogue.EXPECT().Delete(gomock.Any(), "svc-1").Return(failure.Conflict("Service has open assignments"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "assign",
			method: http.MethodPost,
			path:   "/services/assign",
			body:   `{"service_id":"svc-1","employee_id":"emp-1","room_id":"room-1"}`,
			setupMock: func(_ *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments) {
				assignments.EXPECT().
					Assign(gomock.Any(), dto.AssignRequest{ServiceID: "svc-1", EmployeeID: "emp-1", RoomID: "room-1"}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"Service assigned successfully"}`,
		},
		{
			name:       "assign without employee",
			method:     http.MethodPost,
			path:       "/services/assign",
			body:       `{"service_id":"svc-1","room_id":"room-1"}`,
			setupMock:  func(*serviceMocks.MockCatalogue, *serviceMocks.MockAssignments) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"employee_id is required"}`,
		},
		{
			name:   "list assignments of an employee",
			method: http.MethodGet,
			path:   "/services/assigned?employee_id=emp-1&status=pending&sort_by=assigned_at&sort_dir=asc",
			setupMock: func(_ *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments) {
				assignments.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAssignmentsResponse, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, "assigned_services.assigned_at", params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)
						assert.Equal(t, "(assigned_services.employee_id = :employee_id AND assigned_services.status = :status)", where)
						assert.Equal(t, map[string]any{"employee_id": "emp-1", "status": "pending"}, args)

						return dto.GetAssignmentsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "list assignments ignores a joined sort column",
			method: http.MethodGet,
			path:   "/services/assigned?sort_by=services.charges",
			setupMock: func(_ *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments) {
				assignments.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetAssignmentsResponse, error) {
						assert.Equal(t, "assigned_services.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return dto.GetAssignmentsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "complete an assignment",
			method: http.MethodPatch,
			path:   "/services/assigned/as-1",
			body:   `{"status":"completed"}`,
			setupMock: func(_ *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments) {
				assignments.EXPECT().
					UpdateStatus(gomock.Any(), "as-1", dto.UpdateAssignmentRequest{Status: "completed"}).
					Return(dto.AssignmentResponse{ID: "as-1", Status: "completed"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown assignment status",
			method:     http.MethodPatch,
			path:       "/services/assigned/as-1",
			body:       `{"status":"done"}`,
			setupMock:  func(*serviceMocks.MockCatalogue, *serviceMocks.MockAssignments) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"status must be one of pending in_progress completed cancelled"}`,
		},
		{
			name:   "delete a billed assignment",
			method: http.MethodDelete,
			path:   "/services/assigned/as-1",
			setupMock: func(_ *serviceMocks.MockCatalogue, assignments *serviceMocks.MockAssignments) {
				assignments.EXPECT().Delete(gomock.Any(), "as-1").Return(failure.InvalidState("Billed assignments cannot be deleted"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			catalogue := serviceMocks.NewMockCatalogue(ctrl)
			assignments := serviceMocks.NewMockAssignments(ctrl)
			tt.setupMock(catalogue, assignments)

			handler := guestservice.New(catalogue, assignments, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
