package food_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resort/infras/otel/mocks"
	"resort/internal/domains/food/model/dto"
	serviceMocks "resort/internal/domains/food/service/mocks"
	"resort/internal/handlers/food"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler(t *testing.T) {
	available := true

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(items *serviceMocks.MockItem, orders *serviceMocks.MockOrder)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "create item",
			method: http.MethodPost,
			path:   "/food-items",
			body:   `{"name":"Nasi Goreng","price":15,"available":true}`,
			setupMock: func(items *serviceMocks.MockItem, _ *serviceMocks.MockOrder) {
				items.EXPECT().
					Create(gomock.Any(), dto.CreateItemRequest{Name: "Nasi Goreng", Price: 15, Available: &available}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"Food item created successfully"}`,
		},
		{
			name:       "create item with a negative price",
			method:     http.MethodPost,
			path:       "/food-items",
			body:       `{"name":"Nasi Goreng","price":-1}`,
			setupMock:  func(*serviceMocks.MockItem, *serviceMocks.MockOrder) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"price must be greater than 0"}`,
		},
		{
			name:   "list available items by name",
			method: http.MethodGet,
			path:   "/food-items?name=goreng&available=true&sort_by=name&sort_dir=asc",
			setupMock: func(items *serviceMocks.MockItem, _ *serviceMocks.MockOrder) {
				items.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, "food_items.name", params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)
						assert.Equal(t, "(LOWER(food_items.name) LIKE LOWER(:name) AND food_items.available = :available)", where)
						assert.Equal(t, map[string]any{"name": "%goreng%", "available": true}, args)

						return dto.GetItemsResponse{Items: []dto.ItemResponse{}}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"items":[],"total_page":0,"total_data":0}}`,
		},
		{
			name:   "list items ignores an unknown sort column",
			method: http.MethodGet,
			path:   "/food-items?sort_by=description&sort_dir=asc",
			setupMock: func(items *serviceMocks.MockItem, _ *serviceMocks.MockOrder) {
				items.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) (dto.GetItemsResponse, error) {
						assert.Equal(t, "food_items.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return dto.GetItemsResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "toggle without a body flips",
			method: http.MethodPatch,
			path:   "/food-items/item-1/toggle-availability",
			setupMock: func(items *serviceMocks.MockItem, _ *serviceMocks.MockOrder) {
				items.EXPECT().
					SetAvailability(gomock.Any(), "item-1", nil).
					Return(dto.ItemResponse{ID: "item-1", Name: "Nasi Goreng", Price: 15}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "toggle with an explicit value",
			method: http.MethodPatch,
			path:   "/food-items/item-1/toggle-availability",
			body:   `{"available":true}`,
			setupMock: func(items *serviceMocks.MockItem, _ *serviceMocks.MockOrder) {
				items.EXPECT().
					SetAvailability(gomock.Any(), "item-1", &available).
					Return(dto.ItemResponse{ID: "item-1", Available: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "toggle with an empty object",
			method:     http.MethodPatch,
			path:       "/food-items/item-1/toggle-availability",
			body:       `{}`,
			setupMock:  func(*serviceMocks.MockItem, *serviceMocks.MockOrder) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"available is required"}`,
		},
		{
			name:   "order for a room",
			method: http.MethodPost,
			path:   "/food-orders",
			body:   `{"room_id":"room-1","items":[{"food_item_id":"item-1","quantity":2}]}`,
			setupMock: func(_ *serviceMocks.MockItem, orders *serviceMocks.MockOrder) {
				orders.EXPECT().
					Create(gomock.Any(), dto.CreateOrderRequest{
						RoomID: "room-1",
						Items:  []dto.OrderLineRequest{{FoodItemID: "item-1", Quantity: 2}},
					}).
					Return(dto.OrderResponse{ID: "order-1", Amount: 30}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "order without lines",
			method:     http.MethodPost,
			path:       "/food-orders",
			body:       `{"room_id":"room-1"}`,
			setupMock:  func(*serviceMocks.MockItem, *serviceMocks.MockOrder) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"items is required"}`,
		},
		{
			name:   "order for an empty room",
			method: http.MethodPost,
			path:   "/food-orders",
			body:   `{"room_id":"room-9","items":[{"food_item_id":"item-1","quantity":1}]}`,
			setupMock: func(_ *serviceMocks.MockItem, orders *serviceMocks.MockOrder) {
				orders.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.OrderResponse{}, failure.BadRequestFromString("Room is not currently occupied"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Room is not currently occupied"}`,
		},
		{
			name:   "list orders of a room",
			method: http.MethodGet,
			path:   "/food-orders?room_id=room-1&billing_status=unbilled&sort_by=(SELECT+1)",
			setupMock: func(_ *serviceMocks.MockItem, orders *serviceMocks.MockOrder) {
				orders.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error) {
						where, args := filter.GetWhereClause()

						assert.Equal(t, "food_orders.created_at", params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)
						assert.Equal(t, "(food_orders.room_id = :room_id AND food_orders.billing_status = :billing_status)", where)
						assert.Equal(t, map[string]any{"room_id": "room-1", "billing_status": "unbilled"}, args)

						return dto.GetOrdersResponse{}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "cancel a billed order",
			method: http.MethodPatch,
			path:   "/food-orders/order-1/cancel",
			setupMock: func(_ *serviceMocks.MockItem, orders *serviceMocks.MockOrder) {
				orders.EXPECT().Cancel(gomock.Any(), "order-1").Return(failure.InvalidState("Billed orders cannot be cancelled"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "delete order",
			method: http.MethodDelete,
			path:   "/food-orders/order-1",
			setupMock: func(_ *serviceMocks.MockItem, orders *serviceMocks.MockOrder) {
				orders.EXPECT().Delete(gomock.Any(), "order-1").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Food order deleted successfully"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			items := serviceMocks.NewMockItem(ctrl)
			orders := serviceMocks.NewMockOrder(ctrl)
			tt.setupMock(items, orders)

			handler := food.New(items, orders, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
