package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	authMocks "resort/internal/domains/auth/mocks"
	"resort/internal/domains/auth/model/dto"
	"resort/internal/handlers/auth"
	"resort/shared/constant"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(svc *authMocks.MockAuth, userID string) http.Handler {
	handler := auth.New(svc, mocks.NewOtel())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, userID))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(r)

	return r
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		userID     string
		setupMock  func(svc *authMocks.MockAuth)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "login",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"ayu@resort.test","password":"secret-pass"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Login(gomock.Any(), dto.LoginRequest{Email: "ayu@resort.test", Password: "secret-pass"}).
					Return(dto.LoginResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 3600}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"access_token":"a","refresh_token":"r","expires_in":3600}}`,
		},
		{
			name:   "login with bad credentials",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"ayu@resort.test","password":"nope"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid email or password"}`,
		},
		{
			name:       "login without password",
			method:     http.MethodPost,
			path:       "/auth/login",
			body:       `{"email":"ayu@resort.test"}`,
			setupMock:  func(*authMocks.MockAuth) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"password is required"}`,
		},
		{
			name:   "register staff",
			method: http.MethodPost,
			path:   "/auth/register",
			body:   `{"email":"komang@resort.test","password":"12345678","role":"staff"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"User registered successfully"}`,
		},
		{
			name:   "register duplicate email",
			method: http.MethodPost,
			path:   "/auth/register",
			body:   `{"email":"komang@resort.test","password":"12345678"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("email already registered"))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"email already registered"}`,
		},
		{
			name:   "refresh token",
			method: http.MethodPost,
			path:   "/auth/refresh-token",
			body:   `{"refresh_token":"r"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "r"}).
					Return(dto.RefreshTokenResponse{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: 60}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"access_token":"a2","refresh_token":"r2","expires_in":60}}`,
		},
		{
			name:   "change password uses the caller",
			method: http.MethodPut,
			path:   "/auth/password",
			body:   `{"current_password":"old-pass","new_password":"new-password"}`,
			userID: "u-7",
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-password"}, "u-7").
					Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Password changed successfully"}`,
		},
		{
			name:       "malformed body",
			method:     http.MethodPut,
			path:       "/auth/password",
			body:       `{"current_password":`,
			userID:     "u-7",
			setupMock:  func(*authMocks.MockAuth) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := authMocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newRouter(svc, tt.userID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
