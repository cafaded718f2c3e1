package service_test

import (
	"context"
	"errors"
	"net/http"
	"resort/config"
	"resort/infras/otel/mocks"
	availabilityMocks "resort/internal/domains/availability/mocks"
	availabilityService "resort/internal/domains/availability/service"
	bookingMocks "resort/internal/domains/booking/mocks"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/service"
	guestMocks "resort/internal/domains/guest/mocks"
	notificationMocks "resort/internal/domains/notification/mocks"
	roomModel "resort/internal/domains/room/model"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/imagestore"
	imageMocks "resort/shared/imagestore/mocks"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	links    *bookingMocks.MockRoomLink
	reserver *availabilityMocks.MockReserver
	guests   *guestMocks.MockResolver
	notifier *notificationMocks.MockNotifier
	images   *imageMocks.MockStore
	cache    *cacheMocks.MockRedisCache
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		links:    bookingMocks.NewMockRoomLink(ctrl),
		reserver: availabilityMocks.NewMockReserver(ctrl),
		guests:   guestMocks.NewMockResolver(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
		images:   imageMocks.NewMockStore(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.links, f.reserver, f.guests, f.notifier, f.images, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

var rooms = []roomModel.Room{
	{ID: "room-1", Number: "101", Type: "Deluxe", Price: 100},
	{ID: "room-2", Number: "102", Type: "Suite", Price: 150},
}

func reserveWith(rooms []roomModel.Room) func(context.Context, availabilityService.Reservation, availabilityService.WriteFunc) error {
	return func(_ context.Context, _ availabilityService.Reservation, write availabilityService.WriteFunc) error {
		return write(nil, rooms)
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomIDs:     []string{"room-2", "room-1"},
		GuestName:   "  jane doe ",
		GuestMobile: "08123",
		GuestEmail:  "Jane@Example.com",
		CheckIn:     "2024-01-01",
		CheckOut:    "2024-01-03",
		Adults:      2,
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(f fixture)
		wantName  string
		wantGuest bool
		wantCode  int
		wantErr   bool
	}{
		{
			name: "checkout before checkin is rejected before any repository call",
			req: func() dto.CreateBookingRequest {
				r := createRequest()
				r.CheckOut = "2023-12-31"

				return r
			},
			setupMock: func(f fixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "same day checkout is rejected",
			req: func() dto.CreateBookingRequest {
				r := createRequest()
				r.CheckOut = r.CheckIn

				return r
			},
			setupMock: func(f fixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "name is reused from the latest booking of the same guest",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.guests.EXPECT().Resolve(gomock.Any(), "jane@example.com", "08123", "jane doe").Return("guest-1", nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						assert.Equal(t, 1, params.Limit)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return []model.Booking{{ID: "old", GuestName: "Jane Doe"}}, nil
					})
				f.reserver.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, r availabilityService.Reservation, write availabilityService.WriteFunc) error {
						assert.ElementsMatch(t, []string{"room-1", "room-2"}, r.RoomIDs)
						assert.Equal(t, 2, r.Stay.Nights())
						assert.NotEmpty(t, r.Owner)

						return write(nil, rooms)
					})
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
						assert.Equal(t, "Jane Doe", b.GuestName)
						assert.Equal(t, constant.BookingStatusBooked, b.Status)
						assert.Equal(t, "guest-1", *b.UserID)

						return nil
					})
				f.links.EXPECT().
					InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, links []model.RoomLink) error {
						assert.Len(t, links, 2)
						assert.Equal(t, "room-1", links[0].RoomID)

						return nil
					})
				f.notifier.EXPECT().NotifyBookingConfirmed(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantName:  "Jane Doe",
			wantGuest: true,
		},
		{
			name: "guest resolution failure does not block the booking",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.guests.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("database error"))
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.reserver.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(reserveWith(rooms))
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
						assert.Nil(t, b.UserID)

						return nil
					})
				f.links.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.notifier.EXPECT().NotifyBookingConfirmed(gomock.Any(), gomock.Any()).Return(errors.New("smtp down")).AnyTimes()
			},
			wantName: "jane doe",
		},
		{
			name: "room conflict is returned as is",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.guests.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("guest-1", nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.reserver.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("Room 101 is not available for the selected dates."))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.guests.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("guest-1", nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.reserver.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(reserveWith(rooms))
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			res, err := f.svc.Create(ctx, tt.req())

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, res.GuestName)
			assert.Equal(t, "jane@example.com", res.GuestEmail)
			assert.Equal(t, "2024-01-01", res.CheckIn)
			assert.Equal(t, "2024-01-03", res.CheckOut)
			assert.Len(t, res.Rooms, 2)
			assert.Equal(t, tt.wantGuest, res.UserID != "")
		})
	}
}

func TestService_CreateAsGuest(t *testing.T) {
	t.Run("duplicate booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.CreateAsGuest(context.Background(), createRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("created by the guest actor", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.guests.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("guest-1", nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.reserver.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(reserveWith(rooms[:1]))
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.Equal(t, constant.ContextGuest, b.CreatedBy)

				return nil
			})
		f.links.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.notifier.EXPECT().NotifyBookingConfirmed(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.CreateAsGuest(context.Background(), createRequest())
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
	})
}

func TestService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{
		ID:       "b-1",
		Status:   constant.BookingStatusBooked,
		CheckIn:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}, nil)
	f.links.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.LinkedRoom{
		{BookingID: "b-1", RoomID: "room-1", Number: "101"},
	}, nil)

	res, err := f.svc.Get(context.Background(), "b-1")
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "b-1", res.ID)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, "101", res.Rooms[0].Number)
}

func TestService_CheckIn(t *testing.T) {
	img := imagestore.Image{ContentType: "image/png", Data: []byte("png")}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "booking not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking not in booked state",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: constant.BookingStatusCancelled}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "images stored and status updated",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: constant.BookingStatusBooked}, nil)
				f.images.EXPECT().Put(gomock.Any(), imagestore.DirectoryCheckIn, "image/png", []byte("png")).Return("checkin/a.png", nil)
				f.images.EXPECT().Put(gomock.Any(), imagestore.DirectoryCheckIn, "image/png", []byte("png")).Return("checkin/b.png", nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.BookingStatusCheckedIn, fields[model.FieldStatus])
						assert.Equal(t, "staff-1", fields[model.FieldCheckedInBy])
						assert.Equal(t, "checkin/a.png", fields[model.FieldIDCardImage])
						assert.Equal(t, "checkin/b.png", fields[model.FieldGuestPhoto])

						return nil
					})
			},
		},
		{
			name: "update failure removes stored images",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: constant.BookingStatusBooked}, nil)
				f.images.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("checkin/a.png", nil).Times(2)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.images.EXPECT().Delete(gomock.Any(), "checkin/a.png").Return(nil).Times(2)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
			err := f.svc.CheckIn(ctx, "b-1", img, img)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "booking not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancelled regardless of prior status",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", Status: constant.BookingStatusCheckedOut}, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Cancel(context.Background(), "b-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Extend(t *testing.T) {
	active := model.Booking{
		ID:       "b-1",
		Status:   constant.BookingStatusCheckedIn,
		CheckIn:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name        string
		newCheckout string
		setupMock   func(f fixture)
		wantCode    int
		wantErr     bool
	}{
		{
			name:        "new checkout not after current checkout",
			newCheckout: "2024-01-03",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:        "cancelled booking cannot be extended",
			newCheckout: "2024-01-05",
			setupMock: func(f fixture) {
				cancelled := active
				cancelled.Status = constant.BookingStatusCancelled

				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:        "extra nights overlap another stay",
			newCheckout: "2024-01-05",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
				f.links.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.LinkedRoom{{BookingID: "b-1", RoomID: "room-1"}}, nil)
				f.reserver.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("Room 101 is not available for the selected dates."))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:        "extends over the added nights only",
			newCheckout: "2024-01-05",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(active, nil)
				f.links.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.LinkedRoom{{BookingID: "b-1", RoomID: "room-1", Number: "101"}}, nil)
				f.reserver.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r availabilityService.Reservation, write availabilityService.WriteFunc) error {
						assert.Equal(t, []string{"room-1"}, r.RoomIDs)
						assert.Equal(t, "b-1", r.Exclude.BookingID)
						assert.Equal(t, active.CheckOut, r.Stay.CheckIn)
						assert.Equal(t, 2, r.Stay.Nights())

						return write(nil, nil)
					})
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Extend(context.Background(), "b-1", dto.ExtendBookingRequest{NewCheckout: tt.newCheckout})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "2024-01-05", res.CheckOut)
		})
	}
}
