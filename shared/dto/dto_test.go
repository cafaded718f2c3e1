package dto_test

import (
	"net/http/httptest"
	"resort/shared/constant"
	"resort/shared/dto"
	"resort/shared/model"
	"resort/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: createdAt.Add(time.Hour),
		CreatedBy:  "staff-1",
		ModifiedBy: "guest",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(createdAt.Add(time.Hour), constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "staff-1", metadata.CreatedBy)
	assert.Equal(t, "guest", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name:  "all parameters",
			query: "page=2&limit=20&sort_by=check_in&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults for a large listing",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid numbers and direction are ignored",
			query:          "page=-1&limit=abc&sort_dir=sideways",
			defaultRequest: true,
			want:           dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "no defaults requested",
			query: "sort_dir=DESC",
			want:  dto.QueryParams{SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil), tt.defaultRequest)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	tests := []struct {
		name    string
		params  dto.QueryParams
		wantBy  string
		wantDir string
	}{
		{
			name:    "allowed column kept",
			params:  dto.QueryParams{SortBy: "check_in", SortDir: dto.SortDirAsc},
			wantBy:  "bookings.check_in",
			wantDir: dto.SortDirAsc,
		},
		{
			name:    "allowed column without direction",
			params:  dto.QueryParams{SortBy: "id"},
			wantBy:  "bookings.id",
			wantDir: constant.DefaultValueSortDir,
		},
		{
			name:    "unknown column falls back to newest first",
			params:  dto.QueryParams{SortBy: "id; DROP TABLE bookings", SortDir: dto.SortDirAsc},
			wantBy:  "bookings.created_at",
			wantDir: dto.SortDirDesc,
		},
		{
			name:    "already qualified column is not trusted",
			params:  dto.QueryParams{SortBy: "packages.price"},
			wantBy:  "bookings.created_at",
			wantDir: dto.SortDirDesc,
		},
		{
			name:    "empty sort",
			wantBy:  "bookings.created_at",
			wantDir: constant.DefaultValueSortDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.params
			q.RestrictSort("bookings", "id", "check_in", constant.DefaultValueSortBy)

			assert.Equal(t, tt.wantBy, q.SortBy)
			assert.Equal(t, tt.wantDir, q.SortDir)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:     "empty group",
			filter:   dto.FilterGroup{},
			wantArgs: map[string]any{},
		},
		{
			name: "active stays in rooms",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Operator: dto.FilterOperatorIn, Value: []string{"r-1", "r-2"}, Table: "booking_rooms"},
					dto.Filter{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "cancelled", Table: "bookings"},
				},
			},
			wantWhere: "(booking_rooms.room_id IN (:room_id_0, :room_id_1) AND bookings.status != :status)",
			wantArgs:  map[string]any{"room_id_0": "r-1", "room_id_1": "r-2", "status": "cancelled"},
		},
		{
			name: "arg names keep equal columns apart",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "check_in", ArgName: "stay_end", Operator: dto.FilterOperatorLessEq, Value: "2024-01-03"},
					dto.Filter{Field: "check_in", ArgName: "stay_start", Operator: dto.FilterOperatorGreaterEq, Value: "2024-01-01"},
				},
			},
			wantWhere: "(check_in <= :stay_end AND check_in >= :stay_start)",
			wantArgs:  map[string]any{"stay_end": "2024-01-03", "stay_start": "2024-01-01"},
		},
		{
			name: "nested or group",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "guest_name", Operator: dto.FilterOperatorLike, Value: "wayan"},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "booking_id", Operator: dto.FilterIsNotNull},
							dto.Filter{Field: "package_booking_id", Operator: dto.FilterIsNull},
						},
					},
				},
			},
			wantWhere: "(LOWER(guest_name) LIKE LOWER(:guest_name) AND (booking_id IS NOT NULL OR package_booking_id IS NULL))",
			wantArgs:  map[string]any{"guest_name": "%wayan%"},
		},
		{
			name: "empty in list matches nothing",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Operator: dto.FilterOperatorIn, Value: []string{}},
					dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: "booked"},
				},
			},
			wantWhere: "(FALSE AND status IN (:status))",
			wantArgs:  map[string]any{"status": "booked"},
		},
		{
			name: "unknown operators and empty groups are dropped",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "number", Operator: "between", Value: 1},
					dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
					dto.Filter{Field: "number", Operator: dto.FilterOperatorEq, Value: "101"},
				},
			},
			wantWhere: "(number = :number)",
			wantArgs:  map[string]any{"number": "101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
