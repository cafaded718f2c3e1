package packagebooking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/packagebooking/model/dto"
	serviceMocks "resort/internal/domains/packagebooking/service/mocks"
	"resort/internal/handlers/packagebooking"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/imagestore"
	"resort/transport/http/request/requesttest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler(t *testing.T) {
	form, formType := requesttest.Multipart(t,
		requesttest.File{Field: "id_card_image", Filename: "passport.webp", ContentType: "image/webp", Data: "passport"},
		requesttest.File{Field: "guest_photo", Filename: "face.png", ContentType: "image/png", Data: "face"},
	)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		setupMock   func(svc *serviceMocks.MockPackageBooking)
		wantStatus  int
		wantBody    string
	}{
		{
			name:       "create without package",
			method:     http.MethodPost,
			path:       "/package-bookings",
			body:       `{"room_ids":["room-1"],"guest_name":"Jane Doe","check_in":"2024-01-01","check_out":"2024-01-03"}`,
			setupMock:  func(*serviceMocks.MockPackageBooking) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"package_id is required"}`,
		},
		{
			name:   "create for a guest",
			method: http.MethodPost,
			path:   "/package-bookings/guest",
			body:   `{"package_id":"pkg-1","room_ids":["room-1","room-2"],"guest_name":"Jane Doe","guest_email":"jane@resort.test","check_in":"2024-01-01","check_out":"2024-01-03"}`,
			setupMock: func(svc *serviceMocks.MockPackageBooking) {
				svc.EXPECT().
					CreateAsGuest(gomock.Any(), dto.CreatePackageBookingRequest{
						PackageID:  "pkg-1",
						RoomIDs:    []string{"room-1", "room-2"},
						GuestName:  "Jane Doe",
						GuestEmail: "jane@resort.test",
						CheckIn:    "2024-01-01",
						CheckOut:   "2024-01-03",
					}).
					Return(dto.PackageBookingResponse{ID: "pb-1"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "list falls back to newest first",
			method: http.MethodGet,
			path:   "/package-bookings?sort_by=packages.price",
			setupMock: func(svc *serviceMocks.MockPackageBooking) {
				svc.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetPackageBookingsResponse, error) {
						assert.Equal(t, "package_bookings.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return dto.GetPackageBookingsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "check-in",
			method:      http.MethodPut,
			path:        "/package-bookings/pb-1/check-in",
			body:        form,
			contentType: formType,
			setupMock: func(svc *serviceMocks.MockPackageBooking) {
				svc.EXPECT().
					CheckIn(gomock.Any(), "pb-1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, card, face imagestore.Image) error {
						assert.Equal(t, "image/webp", card.ContentType)
						assert.Equal(t, []byte("face"), face.Data)

						return nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Package booking checked in successfully"}`,
		},
		{
			name:        "check-in with a truncated form",
			method:      http.MethodPut,
			path:        "/package-bookings/pb-1/check-in",
			body:        "not a multipart body",
			contentType: "multipart/form-data; boundary=resort",
			setupMock:   func(*serviceMocks.MockPackageBooking) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:   "extend into an occupied night",
			method: http.MethodPut,
			path:   "/package-bookings/pb-1/extend?new_checkout=2024-01-09",
			setupMock: func(svc *serviceMocks.MockPackageBooking) {
				svc.EXPECT().
					Extend(gomock.Any(), "pb-1", dto.ExtendPackageBookingRequest{NewCheckout: "2024-01-09"}).
					Return(dto.PackageBookingResponse{}, failure.Conflict("Room 101 is not available for the selected dates."))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "extend without a date",
			method:     http.MethodPut,
			path:       "/package-bookings/pb-1/extend",
			body:       `{}`,
			setupMock:  func(*serviceMocks.MockPackageBooking) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"new_checkout is required"}`,
		},
		{
			name:   "cancel",
			method: http.MethodPut,
			path:   "/package-bookings/pb-1/cancel",
			setupMock: func(svc *serviceMocks.MockPackageBooking) {
				svc.EXPECT().Cancel(gomock.Any(), "pb-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockPackageBooking(ctrl)
			tt.setupMock(svc)

			handler := packagebooking.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(constant.RequestHeaderContentType, tt.contentType)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
