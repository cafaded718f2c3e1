package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"resort/config"
	"resort/infras/otel/mocks"
	foodMocks "resort/internal/domains/food/mocks"
	"resort/internal/domains/food/model"
	"resort/internal/domains/food/model/dto"
	"resort/internal/domains/food/service"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newItemService(t *testing.T) (*foodMocks.MockItem, service.Item) {
	ctrl := gomock.NewController(t)

	mockRepo := foodMocks.NewMockItem(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockRepo, service.NewItem(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestItemService_Create(t *testing.T) {
	mockRepo, svc := newItemService(t)

	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item model.Item) error {
			assert.True(t, item.Available)
			assert.Equal(t, 15.0, item.Price)
			assert.Equal(t, "staff-1", item.CreatedBy)

			return nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
	err := svc.Create(ctx, dto.CreateItemRequest{Name: "Pasta", Price: 15})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestItemService_Update(t *testing.T) {
	price := 18.0
	unavailable := false

	tests := []struct {
		name      string
		req       dto.UpdateItemRequest
		setupMock func(repo *foodMocks.MockItem)
		wantCode  int
		wantErr   bool
	}{
		{
			name:      "empty request",
			req:       dto.UpdateItemRequest{},
			setupMock: func(repo *foodMocks.MockItem) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdateItemRequest{Price: &price},
			setupMock: func(repo *foodMocks.MockItem) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "false availability is written",
			req:  dto.UpdateItemRequest{Price: &price, Available: &unavailable},
			setupMock: func(repo *foodMocks.MockItem) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &unavailable, fields[model.FieldAvailable])
						assert.Equal(t, &price, fields[model.FieldPrice])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, svc := newItemService(t)
			tt.setupMock(mockRepo)

			err := svc.Update(context.Background(), tt.req, "item-1")
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

func TestItemService_SetAvailability(t *testing.T) {
	off := false

	tests := []struct {
		name      string
		available *bool
		current   bool
		want      bool
	}{
		{name: "toggle on", available: nil, current: false, want: true},
		{name: "toggle off", available: nil, current: true, want: false},
		{name: "explicit value", available: &off, current: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, svc := newItemService(t)

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Item{ID: "item-1", Name: "Pasta", Available: tt.current}, nil)
			mockRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.want, fields[model.FieldAvailable])

					return nil
				})

			res, err := svc.SetAvailability(context.Background(), "item-1", tt.available)
			time.Sleep(10 * time.Millisecond)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res.Available)
		})
	}
}

func TestItemService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *foodMocks.MockItem)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *foodMocks.MockItem) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "referenced by orders",
			setupMock: func(repo *foodMocks.MockItem) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to delete data (food_item): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(repo *foodMocks.MockItem) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, svc := newItemService(t)
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), "item-1")
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
