package service_test

import (
	"context"
	"errors"
	"net/http"
	"resort/config"
	"resort/infras/otel/mocks"
	roleMocks "resort/internal/domains/role/mocks"
	roleModel "resort/internal/domains/role/model"
	userMocks "resort/internal/domains/user/mocks"
	"resort/internal/domains/user/model"
	"resort/internal/domains/user/model/dto"
	"resort/internal/domains/user/service"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockRoleRepo := roleMocks.NewMockRole(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoleRepo, cfg, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "defaults to staff role",
			req:  dto.CreateUserRequest{Email: "staff@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRoleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{ID: "role-staff"}, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, constant.RoleStaff, user.Level)
						assert.Equal(t, "role-staff", *user.RoleID)
						assert.Equal(t, "admin-id", user.CreatedBy)

						return nil
					})
				mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate email",
			req:  dto.CreateUserRequest{Email: "staff@example.com", Password: "password123"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateUserRequest{Email: "staff@example.com", Password: "password123", Level: constant.RoleAdmin},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRoleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{ID: "role-admin"}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockRoleRepo := roleMocks.NewMockRole(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoleRepo, cfg, mockCache, mocks.NewOtel())

	t.Run("empty request", func(t *testing.T) {
		err := svc.Update(context.Background(), dto.UpdateUserRequest{}, "user-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("level change also moves role", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRoleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{ID: "role-admin"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoleAdmin, fields[model.FieldLevel])
				assert.Equal(t, "role-admin", fields[model.FieldRoleID])

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(context.Background(), dto.UpdateUserRequest{Level: constant.RoleAdmin}, "user-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateUserRequest{FullName: "New Name"}, "user-2")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, roleMocks.NewMockRole(ctrl), cfg, mockCache, mocks.NewOtel())
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	t.Run("cannot delete own account", func(t *testing.T) {
		err := svc.Delete(ctx, "admin-id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(ctx, "user-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("removes user and clears staff cache", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), "user:staff").Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Delete(ctx, "user-9")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestUserService_GetStaff(t *testing.T) {
	anna := "Anna Putri"

	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		want      []string
		wantErr   bool
	}{
		{
			name: "sorted by display name, email when no name",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "user:staff", gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
						assert.Equal(t, 1, params.Page)
						assert.Len(t, filter.Filters, 2)

						return []model.User{
							{ID: "u-2", Email: "wayan@resort.local", Level: constant.RoleStaff, Active: true},
							{ID: "u-1", Email: "anna@resort.local", FullName: &anna, Level: constant.RoleAdmin, Active: true},
						}, nil
					})
				cache.EXPECT().Save(gomock.Any(), "user:staff", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			want: []string{"Anna Putri", "wayan@resort.local"},
		},
		{
			name: "repository error",
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			cache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(repo, cache)

			cfg := &config.Config{}
			cfg.Cache.TTL = 3600

			svc := service.New(repo, roleMocks.NewMockRole(ctrl), cfg, cache, mocks.NewOtel())

			res, err := svc.GetStaff(context.Background())

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			names := make([]string, len(res.Staff))
			for i, staff := range res.Staff {
				names[i] = staff.Name
			}

			assert.Equal(t, tt.want, names)
		})
	}
}
