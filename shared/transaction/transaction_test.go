package transaction_test

import (
	"context"
	"errors"
	"resort/infras/otel/mocks"
	"resort/infras/postgres"
	"resort/shared/transaction"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTransaction(t *testing.T) {
	errOverlap := errors.New("room already booked")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		fn        func(tx *sqlx.Tx) error
		wantErr   string
		wantPanic bool
	}{
		{
			name: "commits when the work succeeds",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(tx *sqlx.Tx) error {
				_, err := tx.Exec("UPDATE rooms SET status = 'Booked' WHERE id = $1", "room-1")

				return err
			},
		},
		{
			name: "rolls back when the work fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			fn: func(tx *sqlx.Tx) error {
				if _, err := tx.Exec("INSERT INTO bookings (id) VALUES ($1)", "b-1"); err != nil {
					return err
				}

				return errOverlap
			},
			wantErr: "room already booked",
		},
		{
			name: "rolls back and re-panics",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(*sqlx.Tx) error {
				panic("nil booking")
			},
			wantPanic: true,
		},
		{
			name: "begin failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			fn: func(*sqlx.Tx) error {
				t.Fatal("work must not run without a transaction")

				return nil
			},
			wantErr: "failed to begin transaction: too many connections",
		},
		{
			name: "commit failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn:      func(*sqlx.Tx) error { return nil },
			wantErr: "failed to commit transaction: serialization failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			recorder := mocks.NewRecorder()
			trx := transaction.New(&postgres.Connection{Write: sqlx.NewDb(db, "sqlmock")}, recorder)

			if tt.wantPanic {
				assert.PanicsWithValue(t, "nil booking", func() {
					_ = trx.WithinTransaction(context.Background(), tt.fn)
				})
			} else {
				err = trx.WithinTransaction(context.Background(), tt.fn)

				if tt.wantErr == "" {
					assert.NoError(t, err)
					assert.Empty(t, recorder.Errors())
				} else {
					assert.EqualError(t, err, tt.wantErr)
					assert.Len(t, recorder.Errors(), 1)
				}
			}

			assert.Equal(t, []string{"repository.WithinTransaction"}, recorder.Spans())

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithinTransaction_NoConnection(t *testing.T) {
	for _, conn := range []*postgres.Connection{nil, {}} {
		err := transaction.New(conn, mocks.NewOtel()).WithinTransaction(context.Background(), func(*sqlx.Tx) error {
			t.Fatal("work must not run without a connection")

			return nil
		})

		assert.ErrorIs(t, err, transaction.ErrNoConnection)
	}
}
