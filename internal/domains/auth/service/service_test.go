package service_test

import (
	"context"
	"errors"
	"net/http"
	"resort/config"
	"resort/infras/jwt"
	jwtMocks "resort/infras/jwt/mocks"
	"resort/infras/otel/mocks"
	"resort/internal/domains/auth/model/dto"
	"resort/internal/domains/auth/service"
	roleMocks "resort/internal/domains/role/mocks"
	roleModel "resort/internal/domains/role/model"
	userMocks "resort/internal/domains/user/mocks"
	userModel "resort/internal/domains/user/model"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	users *userMocks.MockUser
	roles *roleMocks.MockRole
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		users: userMocks.NewMockUser(ctrl),
		roles: roleMocks.NewMockRole(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, f.roles, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func staffUser(t *testing.T, level string, active bool) userModel.User {
	hash, err := password.Hash("front-desk-2024")
	assert.NoError(t, err)

	return userModel.User{
		ID:       "u-1",
		Email:    "frontdesk@elysian.test",
		Password: hash,
		Level:    level,
		Active:   active,
	}
}

func TestService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    " FrontDesk@Elysian.test ",
		Password: "front-desk-2024",
	}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "staff by default with a normalized email",
			setupMock: func(f *fixture) {
				f.users.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "frontdesk@elysian.test", args[userModel.FieldEmail])

						return false, nil
					})
				f.roles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{ID: "role-staff", Name: constant.RoleStaff}, nil)
				f.users.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "frontdesk@elysian.test", user.Email)
						assert.Equal(t, constant.RoleStaff, user.Level)
						assert.Equal(t, "role-staff", *user.RoleID)
						assert.True(t, user.Active)
						assert.NoError(t, password.Verify(req.Password, user.Password))

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "role missing from the roles table",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.roles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "insert fails",
			setupMock: func(f *fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.roles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roleModel.Role{ID: "role-staff"}, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Register(context.Background(), req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestService_Login(t *testing.T) {
	tokens := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

	tests := []struct {
		name      string
		password  string
		setupMock func(t *testing.T, f *fixture)
		wantCode  int
	}{
		{
			name:     "issues tokens and records last login",
			password: "front-desk-2024",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "u-1", "frontdesk@elysian.test", constant.RoleStaff).Return(tokens, nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						_, args := filter.GetWhereClause()
						assert.Equal(t, "u-1", args[userModel.FieldID])

						return nil
					})
			},
		},
		{
			name:     "last login write failure does not block sign in",
			password: "front-desk-2024",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleAdmin, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokens, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name:     "unknown email",
			password: "front-desk-2024",
			setupMock: func(_ *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "guest identities cannot sign in",
			password: "front-desk-2024",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleGuest, true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "wrong password",
			password: "front-desk-2025",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "deactivated employee",
			password: "front-desk-2024",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, false), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "lookup error",
			password: "front-desk-2024",
			setupMock: func(_ *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "token signing error",
			password: "front-desk-2024",
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no key"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(t, f)

			res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "FrontDesk@elysian.test", Password: tt.password})

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "refresh", res.RefreshToken)
				assert.Equal(t, int64(900), res.ExpiresIn)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestService_RefreshToken(t *testing.T) {
	t.Run("rotates the pair", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh").Return(&jwt.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.NoError(t, err)
		assert.Equal(t, "access-2", res.AccessToken)
		assert.Equal(t, "refresh-2", res.RefreshToken)
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "stale").Return(nil, errors.New("token expired"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "stale"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(t *testing.T, f *fixture)
		wantCode  int
	}{
		{
			name: "stores the new hash",
			req:  dto.ChangePasswordRequest{CurrentPassword: "front-desk-2024", NewPassword: "night-shift-2025"},
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, true), nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("night-shift-2025", hash))
						assert.Equal(t, "u-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "current password mismatch",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "night-shift-2025"},
			setupMock: func(t *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(t, constant.RoleStaff, true), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "account gone",
			req:  dto.ChangePasswordRequest{CurrentPassword: "front-desk-2024", NewPassword: "night-shift-2025"},
			setupMock: func(_ *testing.T, f *fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(t, f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

			err := f.svc.ChangePassword(ctx, tt.req, "u-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
