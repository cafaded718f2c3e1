package service_test

import (
	"context"
	"fmt"
	"net/http"
	"resort/config"
	"resort/infras/otel/mocks"
	gsMocks "resort/internal/domains/guestservice/mocks"
	"resort/internal/domains/guestservice/model"
	"resort/internal/domains/guestservice/model/dto"
	"resort/internal/domains/guestservice/service"
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

func TestCatalogueService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := gsMocks.NewMockService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.NewCatalogue(mockRepo, cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("cache miss")).
		Times(2)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Service{{ID: "spa", Name: "Spa", Charges: 40}}, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 40.0, res.Services[0].Charges)
}

func TestCatalogueService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *gsMocks.MockService)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *gsMocks.MockService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "still assigned",
			setupMock: func(repo *gsMocks.MockService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to delete data (service): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func(repo *gsMocks.MockService) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := gsMocks.NewMockService(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			tt.setupMock(mockRepo)

			svc := service.NewCatalogue(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

			err := svc.Delete(context.Background(), "spa")
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

func TestCatalogueService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := gsMocks.NewMockService(ctrl)
	svc := service.NewCatalogue(mockRepo, &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	err := svc.Update(context.Background(), dto.UpdateServiceRequest{}, "spa")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
