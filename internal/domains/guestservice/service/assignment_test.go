package service_test

import (
	"context"
	"errors"
	"net/http"
	"resort/config"
	"resort/infras/otel/mocks"
	gsMocks "resort/internal/domains/guestservice/mocks"
	"resort/internal/domains/guestservice/model"
	"resort/internal/domains/guestservice/model/dto"
	"resort/internal/domains/guestservice/service"
	roomMocks "resort/internal/domains/room/mocks"
	userMocks "resort/internal/domains/user/mocks"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type assignmentFixture struct {
	repo     *gsMocks.MockAssignment
	services *gsMocks.MockService
	rooms    *roomMocks.MockRoom
	users    *userMocks.MockUser
	svc      service.Assignments
}

func newAssignmentFixture(t *testing.T) assignmentFixture {
	ctrl := gomock.NewController(t)

	f := assignmentFixture{
		repo:     gsMocks.NewMockAssignment(ctrl),
		services: gsMocks.NewMockService(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		users:    userMocks.NewMockUser(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.NewAssignments(f.repo, f.services, f.rooms, f.users, cfg, mockCache, mocks.NewOtel())

	return f
}

func TestAssignmentService_Assign(t *testing.T) {
	req := dto.AssignRequest{ServiceID: "spa", EmployeeID: "staff-2", RoomID: "room-1"}

	tests := []struct {
		name      string
		setupMock func(f assignmentFixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "assignment starts pending and unbilled",
			setupMock: func(f assignmentFixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a model.Assignment) error {
						assert.Equal(t, model.StatusPending, a.Status)
						assert.Equal(t, constant.BillingStatusUnbilled, a.BillingStatus)
						assert.Equal(t, "room-1", a.RoomID)
						assert.False(t, a.AssignedAt.IsZero())

						return nil
					})
			},
		},
		{
			name: "unknown service",
			setupMock: func(f assignmentFixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown room",
			setupMock: func(f assignmentFixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "lookup error",
			setupMock: func(f assignmentFixture) {
				f.services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssignmentFixture(t)
			tt.setupMock(f)

			err := f.svc.Assign(context.Background(), req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssignmentService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  model.Assignment
		status   string
		update   bool
		wantCode int
		wantErr  bool
	}{
		{
			name:    "pending to in progress",
			current: model.Assignment{ID: "as-1", Status: model.StatusPending, BillingStatus: constant.BillingStatusUnbilled},
			status:  model.StatusInProgress,
			update:  true,
		},
		{
			name:    "same status is a no-op",
			current: model.Assignment{ID: "as-1", Status: model.StatusCompleted, BillingStatus: constant.BillingStatusUnbilled},
			status:  model.StatusCompleted,
		},
		{
			name:     "completed cannot be cancelled",
			current:  model.Assignment{ID: "as-1", Status: model.StatusCompleted, BillingStatus: constant.BillingStatusUnbilled},
			status:   model.StatusCancelled,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "billed assignment is frozen",
			current:  model.Assignment{ID: "as-1", Status: model.StatusInProgress, BillingStatus: constant.BillingStatusBilled},
			status:   model.StatusCompleted,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "not found",
			current:  model.Assignment{},
			status:   model.StatusCompleted,
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssignmentFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.update {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.status, fields[model.FieldStatus])

						return nil
					})
			}

			res, err := f.svc.UpdateStatus(context.Background(), "as-1", dto.UpdateAssignmentRequest{Status: tt.status})
			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
		})
	}
}

func TestAssignmentService_Delete(t *testing.T) {
	t.Run("billed assignment is kept", func(t *testing.T) {
		f := newAssignmentFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Assignment{
			ID:            "as-1",
			BillingStatus: constant.BillingStatusBilled,
		}, nil)

		err := f.svc.Delete(context.Background(), "as-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unbilled assignment is deleted", func(t *testing.T) {
		f := newAssignmentFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Assignment{
			ID:            "as-1",
			BillingStatus: constant.BillingStatusUnbilled,
		}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(context.Background(), "as-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
