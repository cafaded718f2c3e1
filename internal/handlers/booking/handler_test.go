package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/booking/model/dto"
	serviceMocks "resort/internal/domains/booking/service/mocks"
	"resort/internal/handlers/booking"
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
	idCard := requesttest.File{Field: "id_card_image", Filename: "ktp.png", ContentType: "image/png", Data: "id-card-bytes"}
	photo := requesttest.File{Field: "guest_photo", Filename: "face.jpg", ContentType: "image/jpeg", Data: "photo-bytes"}

	checkInForm, checkInType := requesttest.Multipart(t, idCard, photo)
	noPhotoForm, noPhotoType := requesttest.Multipart(t, idCard)
	textForm, textType := requesttest.Multipart(t, requesttest.File{
		Field: "id_card_image", Filename: "notes.txt", ContentType: "text/plain", Data: "hello",
	}, photo)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		setupMock   func(svc *serviceMocks.MockBooking)
		wantStatus  int
		wantBody    string
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/bookings",
			body:   `{"room_ids":["room-1"],"guest_name":"Jane Doe","check_in":"2024-01-01","check_out":"2024-01-03","adults":2}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateBookingRequest{
						RoomIDs:   []string{"room-1"},
						GuestName: "Jane Doe",
						CheckIn:   "2024-01-01",
						CheckOut:  "2024-01-03",
						Adults:    2,
					}).
					Return(dto.BookingResponse{ID: "b-1", Status: constant.BookingStatusBooked}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "create with a malformed date",
			method:     http.MethodPost,
			path:       "/bookings",
			body:       `{"room_ids":["room-1"],"guest_name":"Jane Doe","check_in":"01/01/2024","check_out":"2024-01-03"}`,
			setupMock:  func(*serviceMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"check_in must be a date in 2006-01-02 format"}`,
		},
		{
			name:   "room taken",
			method: http.MethodPost,
			path:   "/bookings/guest",
			body:   `{"room_ids":["room-1"],"guest_name":"Jane Doe","check_in":"2024-01-01","check_out":"2024-01-03"}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					CreateAsGuest(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.Conflict("Room 101 is not available for the selected dates."))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Room 101 is not available for the selected dates."}`,
		},
		{
			name:   "list ignores an unknown sort column",
			method: http.MethodGet,
			path:   "/bookings?sort_dir=asc&sort_by=(SELECT+1)&status=booked",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
						_, args := filter.GetWhereClause()

						assert.Equal(t, "bookings.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)
						assert.Equal(t, constant.BookingStatusBooked, args["status"])

						return dto.GetBookingsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "list sorted by check-in",
			method: http.MethodGet,
			path:   "/bookings?sort_by=check_in&sort_dir=asc&page=2",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetBookingsResponse, error) {
						assert.Equal(t, gDto.QueryParams{Page: 2, Limit: constant.DefaultValueLimit, SortBy: "bookings.check_in", SortDir: gDto.SortDirAsc}, params)

						return dto.GetBookingsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "check-in with both images",
			method:      http.MethodPut,
			path:        "/bookings/b-1/check-in",
			body:        checkInForm,
			contentType: checkInType,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					CheckIn(gomock.Any(), "b-1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, card, face imagestore.Image) error {
						assert.Equal(t, imagestore.Image{Data: []byte("id-card-bytes"), ContentType: "image/png"}, card)
						assert.Equal(t, imagestore.Image{Data: []byte("photo-bytes"), ContentType: "image/jpeg"}, face)

						return nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Booking checked in successfully"}`,
		},
		{
			name:        "check-in without guest photo",
			method:      http.MethodPut,
			path:        "/bookings/b-1/check-in",
			body:        noPhotoForm,
			contentType: noPhotoType,
			setupMock:   func(*serviceMocks.MockBooking) {},
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"guest_photo is required"}`,
		},
		{
			name:        "check-in with a text file",
			method:      http.MethodPut,
			path:        "/bookings/b-1/check-in",
			body:        textForm,
			contentType: textType,
			setupMock:   func(*serviceMocks.MockBooking) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "check-in without a form",
			method:      http.MethodPut,
			path:        "/bookings/b-1/check-in",
			body:        `{"id_card_image":"x"}`,
			contentType: constant.ContentTypeJSON,
			setupMock:   func(*serviceMocks.MockBooking) {},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "check-in of a cancelled booking",
			method:      http.MethodPut,
			path:        "/bookings/b-1/check-in",
			body:        checkInForm,
			contentType: checkInType,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					CheckIn(gomock.Any(), "b-1", gomock.Any(), gomock.Any()).
					Return(failure.InvalidState("Booking cannot be checked in from status cancelled"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "extend from query string",
			method: http.MethodPut,
			path:   "/bookings/b-1/extend?new_checkout=2024-01-05",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					Extend(gomock.Any(), "b-1", dto.ExtendBookingRequest{NewCheckout: "2024-01-05"}).
					Return(dto.BookingResponse{ID: "b-1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "extend from body",
			method: http.MethodPut,
			path:   "/bookings/b-1/extend",
			body:   `{"new_checkout":"2024-01-06"}`,
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().
					Extend(gomock.Any(), "b-1", dto.ExtendBookingRequest{NewCheckout: "2024-01-06"}).
					Return(dto.BookingResponse{ID: "b-1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "extend with a bad query date",
			method:     http.MethodPut,
			path:       "/bookings/b-1/extend?new_checkout=tomorrow",
			setupMock:  func(*serviceMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"new_checkout must be a date in 2006-01-02 format"}`,
		},
		{
			name:   "cancel unknown booking",
			method: http.MethodPut,
			path:   "/bookings/missing/cancel",
			setupMock: func(svc *serviceMocks.MockBooking) {
				svc.EXPECT().Cancel(gomock.Any(), "missing").Return(failure.NotFound("Booking not found"))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Booking not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := serviceMocks.NewMockBooking(ctrl)
			tt.setupMock(svc)

			handler := booking.New(svc, mocks.NewOtel())
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
