package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"resort/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from error",
			err:      failure.BadRequest(errors.New("check_out must be after check_in")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "check_out must be after check_in",
		},
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("room_ids is required"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "room_ids is required",
		},
		{
			name:     "invalid state",
			err:      failure.InvalidState("Booking is not in 'booked' state"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Booking is not in 'booked' state",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("invalid token"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid token",
		},
		{
			name:     "forbidden",
			err:      failure.ForbiddenError,
			wantCode: http.StatusForbidden,
			wantMsg:  "You don't have the required permissions",
		},
		{
			name:     "not found",
			err:      failure.NotFound("room not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "room not found",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("Room 101 is already booked for the selected dates"),
			wantCode: http.StatusConflict,
			wantMsg:  "Room 101 is already booked for the selected dates",
		},
		{
			name:     "internal error",
			err:      failure.InternalError(errors.New("connection refused")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			assert.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.wantCode, fail.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestNilErrors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "failure",
			err:  failure.NotFound("booking not found"),
			want: http.StatusNotFound,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("checkout: %w", failure.Conflict("Booking already checked out")),
			want: http.StatusConflict,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "nil",
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}
