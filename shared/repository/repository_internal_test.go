package repository

import (
	"reflect"
	"resort/infras/otel/mocks"
	"resort/shared/dto"
	"resort/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stay struct {
	ID       string  `db:"id"`
	RoomID   string  `db:"room_id"`
	Status   string  `db:"status"`
	Note     string  `db:"-"`
	Internal string
	Number   string  `db:"number" table:"rooms" column:"number"`
	Price    float64 `db:"room_price" table:"rooms" column:"price"`
	model.Metadata
}

func (stay) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = stays.room_id"
}

func newStayRepo() Repository[stay] {
	return NewRepository[stay]("stay", "stays", "id", nil, mocks.NewOtel())
}

func byStatus(status string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: status, Operator: dto.FilterOperatorEq, Table: "stays"},
		},
		Operator: dto.FilterGroupOperatorAnd,
	}
}

func TestGetColumns(t *testing.T) {
	columns, insertColumns := getColumns("stays", reflect.TypeOf(stay{}))

	assert.Equal(t, []string{
		"id", "room_id", "status", "created_at", "modified_at", "created_by", "modified_by",
	}, insertColumns)

	assert.Contains(t, columns, column{name: "price", table: "rooms", alias: "room_price"})
	assert.Contains(t, columns, column{name: "number", table: "rooms", alias: "number"})
	assert.Contains(t, columns, column{name: "created_at", table: "stays"})
	assert.Len(t, columns, 9)
}

func TestRepository_InsertQuery(t *testing.T) {
	repo := newStayRepo()

	assert.Equal(t,
		"INSERT INTO stays (id, room_id, status, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :room_id, :status, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery(),
	)
}

func TestRepository_SelectQuery(t *testing.T) {
	repo := newStayRepo()

	tests := []struct {
		name     string
		params   *dto.QueryParams
		filter   dto.FilterGroup
		columns  []string
		wantSQL  string
		wantArgs map[string]any
		wantErr  bool
	}{
		{
			name:     "single row with selected columns",
			filter:   byStatus("booked"),
			columns:  []string{"id", "price"},
			wantSQL:  "SELECT stays.id, rooms.price AS room_price FROM stays JOIN rooms ON rooms.id = stays.room_id WHERE (stays.status = :status)",
			wantArgs: map[string]any{"status": "booked"},
		},
		{
			name:     "page two sorted",
			params:   &dto.QueryParams{Page: 2, Limit: 10, SortBy: "stays.created_at", SortDir: dto.SortDirDesc},
			columns:  []string{"id"},
			wantSQL:  "SELECT stays.id FROM stays JOIN rooms ON rooms.id = stays.room_id ORDER BY stays.created_at DESC LIMIT :limit OFFSET :offset",
			wantArgs: map[string]any{"limit": 10, "offset": 10},
		},
		{
			name:     "limit without page",
			params:   &dto.QueryParams{Limit: 5},
			columns:  []string{"status"},
			wantSQL:  "SELECT stays.status FROM stays JOIN rooms ON rooms.id = stays.room_id LIMIT :limit",
			wantArgs: map[string]any{"limit": 5},
		},
		{
			name:    "subquery as sort column",
			params:  &dto.QueryParams{Limit: 5, SortBy: "(SELECT CASE WHEN (SELECT 1)=1 THEN 1 ELSE 1/0 END)", SortDir: dto.SortDirAsc},
			wantErr: true,
		},
		{
			name:    "sort column with trailing statement",
			params:  &dto.QueryParams{SortBy: "id; DROP TABLE stays", SortDir: dto.SortDirAsc},
			wantErr: true,
		},
		{
			name:    "unknown direction",
			params:  &dto.QueryParams{SortBy: "stays.id", SortDir: "ASC, (SELECT 1)"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := repo.selectQuery(tt.params, tt.filter, tt.columns...)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidSort)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRepository_UpdateQuery(t *testing.T) {
	repo := newStayRepo()

	query, args, err := repo.updateQuery(map[string]any{
		"status":      "checked_in",
		"modified_by": "u-1",
		"modified_at": "now",
	}, byStatus("booked"))
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE stays SET modified_at = :set_modified_at, modified_by = :set_modified_by, status = :set_status WHERE (stays.status = :status)",
		query,
	)
	assert.Equal(t, "booked", args["status"])
	assert.Equal(t, "checked_in", args["set_status"])

	_, _, err = repo.updateQuery(map[string]any{"status": "cancelled"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}
