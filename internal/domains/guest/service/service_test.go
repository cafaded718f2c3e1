package service_test

import (
	"context"
	"errors"
	"net/http"
	"resort/infras/otel/mocks"
	"resort/internal/domains/guest/service"
	roleMocks "resort/internal/domains/role/mocks"
	roleModel "resort/internal/domains/role/model"
	userMocks "resort/internal/domains/user/mocks"
	userModel "resort/internal/domains/user/model"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func TestResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockRoleRepo := roleMocks.NewMockRole(ctrl)

	resolver := service.New(mockUserRepo, mockRoleRepo, mocks.NewOtel())

	existing := userModel.User{ID: "guest-1", Email: "ana@example.com", FullName: strPtr("Ana"), Level: constant.RoleGuest}

	tests := []struct {
		name      string
		email     string
		mobile    string
		guestName string
		setupMock func()
		wantID    string
		wantCode  int
	}{
		{
			name:     "missing identifier",
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "same email resolves to same user without update",
			email:     "ana@example.com",
			guestName: "Ana",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
			},
			wantID: "guest-1",
		},
		{
			name:      "different name refreshes full name",
			email:     "ana@example.com",
			guestName: "Ana Maria",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Ana Maria", fields[userModel.FieldFullName])

						return nil
					})
			},
			wantID: "guest-1",
		},
		{
			name:   "falls back to phone lookup",
			email:  "new@example.com",
			mobile: "0812345",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "guest-2"}, nil)
			},
			wantID: "guest-2",
		},
		{
			name:      "creates inactive guest with placeholder email and guest role",
			mobile:    "0899",
			guestName: "Budi",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
				mockRoleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{}, nil)
				mockRoleRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, role roleModel.Role) error {
						assert.Equal(t, constant.RoleGuest, role.Name)
						assert.Empty(t, role.Permissions)

						return nil
					})
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "guest_0899@temp.com", user.Email)
						assert.Equal(t, constant.RoleGuest, user.Level)
						assert.False(t, user.Active)
						assert.Equal(t, "0899", *user.Phone)
						assert.NotEmpty(t, user.Password)

						return nil
					})
			},
		},
		{
			name:  "lookup error",
			email: "ana@example.com",
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			id, err := resolver.Resolve(context.Background(), tt.email, tt.mobile, tt.guestName)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, id)

			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestPlaceholderEmail(t *testing.T) {
	assert.Equal(t, "guest_0812@temp.com", service.PlaceholderEmail("0812"))
	assert.True(t, strings.HasPrefix(service.PlaceholderEmail(""), "guest_"))
	assert.True(t, strings.HasSuffix(service.PlaceholderEmail(""), "@temp.com"))
}
