package shared_test

import (
	"context"
	"errors"
	"resort/shared"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	"resort/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "true", want: &yes},
		{input: "1", want: &yes},
		{input: "false", want: &no},
		{input: "", want: nil},
		{input: "available", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToNumbers(t *testing.T) {
	adults, err := shared.ConvertStringToInt(" 2 ")
	assert.NoError(t, err)
	assert.Equal(t, 2, adults)

	_, err = shared.ConvertStringToInt("two")
	assert.Error(t, err)

	price, err := shared.ConvertStringToFloat("150.50")
	assert.NoError(t, err)
	assert.InDelta(t, 150.5, price, 0.0001)

	_, err = shared.ConvertStringToFloat("cheap")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "no limit", total: 5, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type roomPatch struct {
		Type     string  `db:"type"`
		Price    float64 `db:"price"`
		Adults   *int    `db:"adults"`
		Children *int    `db:"children"`
		Note     string
	}

	zero := 0

	fields := shared.TransformFields(roomPatch{Price: 175, Adults: &zero, Note: "ignored"}, "staff-1")

	assert.Equal(t, 175.0, fields["price"])
	assert.Equal(t, &zero, fields["adults"])
	assert.NotContains(t, fields, "type")
	assert.NotContains(t, fields, "children")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 4)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "booked", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "guest_email", Value: "a@b.com", Operator: dto.FilterOperatorEq},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))

	cancelled := filter
	cancelled.Filters = []any{
		dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorEq},
		dto.Filter{Field: "guest_email", Value: "a@b.com", Operator: dto.FilterOperatorEq},
	}

	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, cancelled))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "checkout:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), cache, "checkout:gets")

	cache.EXPECT().Clear(gomock.Any(), "checkout:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), cache, "checkout:count")
}
