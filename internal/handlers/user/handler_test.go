package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	userMocks "resort/internal/domains/user/service/mocks"
	"resort/internal/domains/user/model/dto"
	"resort/internal/handlers/user"
	"resort/shared/constant"
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
		setupMock  func(svc *userMocks.MockUser)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "directory hides guests by default",
			method: http.MethodGet,
			path:   "/users?q=ayu",
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, constant.DefaultValueLimit, params.Limit)
						assert.Contains(t, where, "users.level IN")
						assert.Equal(t, "%ayu%", args["email"])

						return dto.GetUsersResponse{Users: []dto.UserResponse{}, TotalData: 0}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"users":[],"total_page":0,"total_data":0}}`,
		},
		{
			name:   "guest level and active flag",
			method: http.MethodGet,
			path:   "/users?level=guest&active=true",
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
						_, args := filter.GetWhereClause()

						assert.Equal(t, "guest", args["level"])
						assert.Equal(t, true, args["active"])

						return dto.GetUsersResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "assignable staff",
			method: http.MethodGet,
			path:   "/users/staff",
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().GetStaff(gomock.Any()).Return(dto.GetStaffResponse{
					Staff: []dto.StaffResponse{{ID: "u-1", Name: "Ayu", Email: "ayu@resort.test", Level: "staff"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"staff":[{"id":"u-1","name":"Ayu","email":"ayu@resort.test","level":"staff"}]}}`,
		},
		{
			name:   "create rejects guest level",
			method: http.MethodPost,
			path:   "/users",
			body:   `{"email":"wayan@resort.test","password":"12345678","level":"guest"}`,
			setupMock: func(*userMocks.MockUser) {
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"level must be one of admin staff"}`,
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/users",
			body:   `{"email":"wayan@resort.test","password":"12345678"}`,
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().Create(gomock.Any(), dto.CreateUserRequest{Email: "wayan@resort.test", Password: "12345678"}).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"User created successfully"}`,
		},
		{
			name:   "deactivate",
			method: http.MethodPatch,
			path:   "/users/u-1",
			body:   `{"active":false}`,
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().
					Update(gomock.Any(), gomock.Any(), "u-1").
					DoAndReturn(func(_ context.Context, req dto.UpdateUserRequest, _ string) error {
						if assert.NotNil(t, req.Active) {
							assert.False(t, *req.Active)
						}

						return nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown user",
			method: http.MethodGet,
			path:   "/users/missing",
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.UserResponse{}, failure.NotFound("user"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/users/u-2",
			setupMock: func(svc *userMocks.MockUser) {
				svc.EXPECT().Delete(gomock.Any(), "u-2").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"User deleted successfully"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := userMocks.NewMockUser(ctrl)
			tt.setupMock(svc)

			handler := user.New(svc, mocks.NewOtel())
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
