// Package repository answers overlap questions across both booking kinds.
// Regular bookings use the two comparison overlap test, package bookings the explicit
// three case form. Both select the same intervals.
package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/shared/constant"
	"resort/shared/daterange"
	"resort/shared/logger"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	entityName = "availability"

	bookingOverlap = `SELECT 1 FROM booking_rooms br
		JOIN bookings b ON b.id = br.booking_id
		WHERE br.room_id = r.id AND b.status IN (?)
		AND b.check_in < ? AND b.check_out > ?`

	packageOverlap = `SELECT 1 FROM package_booking_rooms pr
		JOIN package_bookings pb ON pb.id = pr.package_booking_id
		WHERE pr.room_id = r.id AND pb.status IN (?)
		AND (
			(pb.check_in <= ? AND pb.check_out > ?)
			OR (pb.check_in < ? AND pb.check_out >= ?)
			OR (pb.check_in >= ? AND pb.check_out <= ?)
		)`

	occupiedQuery = `SELECT r.id FROM rooms r WHERE r.id IN (?) AND (
		EXISTS (SELECT 1 FROM booking_rooms br
			JOIN bookings b ON b.id = br.booking_id
			WHERE br.room_id = r.id AND b.status IN (?) AND b.check_in <= ? AND b.check_out > ?)
		OR EXISTS (SELECT 1 FROM package_booking_rooms pr
			JOIN package_bookings pb ON pb.id = pr.package_booking_id
			WHERE pr.room_id = r.id AND pb.status IN (?) AND pb.check_in <= ? AND pb.check_out > ?)
	)`

	activeLinkQuery = `SELECT EXISTS (
		SELECT 1 FROM booking_rooms br JOIN bookings b ON b.id = br.booking_id
		WHERE br.room_id = ? AND b.status IN (?)
	) OR EXISTS (
		SELECT 1 FROM package_booking_rooms pr JOIN package_bookings pb ON pb.id = pr.package_booking_id
		WHERE pr.room_id = ? AND pb.status IN (?)
	)`
)

var (
	activeStatuses = []string{constant.BookingStatusBooked, constant.BookingStatusCheckedIn}
)

// Exclude names bookings that must not count against themselves, used when extending a stay.
type Exclude struct {
	BookingID        string
	PackageBookingID string
}

// Conflict is a room that already has an active stay overlapping the requested range.
type Conflict struct {
	RoomID     string `db:"id"`
	RoomNumber string `db:"number"`
}

type Availability interface {
	Conflicts(ctx context.Context, tx *sqlx.Tx, roomIDs []string, stay daterange.DateRange, exclude Exclude) ([]Conflict, error)
	OccupiedRoomIDs(ctx context.Context, roomIDs []string, day time.Time) ([]string, error)
	HasActiveLink(ctx context.Context, roomID string) (bool, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// ConflictQuery builds the overlap query for roomIDs with bindvars still in "?" form.
func ConflictQuery(roomIDs []string, stay daterange.DateRange, exclude Exclude) (string, []any, error) {
	bookingClause := bookingOverlap
	bookingArgs := []any{activeStatuses, stay.CheckOut, stay.CheckIn}

	if exclude.BookingID != constant.Empty {
		bookingClause += " AND b.id <> ?"
		bookingArgs = append(bookingArgs, exclude.BookingID)
	}

	packageClause := packageOverlap
	packageArgs := []any{
		activeStatuses,
		stay.CheckIn, stay.CheckIn,
		stay.CheckOut, stay.CheckOut,
		stay.CheckIn, stay.CheckOut,
	}

	if exclude.PackageBookingID != constant.Empty {
		packageClause += " AND pb.id <> ?"
		packageArgs = append(packageArgs, exclude.PackageBookingID)
	}

	query := fmt.Sprintf(`SELECT r.id, r.number FROM rooms r WHERE r.id IN (?) AND (EXISTS (%s) OR EXISTS (%s)) ORDER BY r.number`,
		bookingClause, packageClause)

	args := append([]any{roomIDs}, bookingArgs...)
	args = append(args, packageArgs...)

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return constant.Empty, nil, fmt.Errorf("failed to build conflict query: %w", err)
	}

	return query, args, nil
}

// Conflicts returns the rooms in roomIDs that are taken for any night of stay. When tx is nil
// the read pool is used.
func (r *repositoryImpl) Conflicts(ctx context.Context, tx *sqlx.Tx, roomIDs []string, stay daterange.DateRange, exclude Exclude) ([]Conflict, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+entityName+".Conflicts")
	defer scope.End()

	if len(roomIDs) == 0 {
		return nil, nil
	}

	query, args, err := ConflictQuery(roomIDs, stay, exclude)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	var conflicts []Conflict

	if tx != nil {
		query = tx.Rebind(query)
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
		err = tx.SelectContext(ctx, &conflicts, query, args...)
	} else {
		query = r.db.Read.Rebind(query)
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
		err = r.db.Read.SelectContext(ctx, &conflicts, query, args...)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	return conflicts, nil
}

// OccupiedRoomIDs returns the rooms with an active stay covering day.
func (r *repositoryImpl) OccupiedRoomIDs(ctx context.Context, roomIDs []string, day time.Time) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+entityName+".OccupiedRoomIDs")
	defer scope.End()

	if len(roomIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(occupiedQuery, roomIDs, activeStatuses, day, day, activeStatuses, day, day)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build occupancy query: %w", err)
	}

	query = r.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var ids []string
	if err = r.db.Read.SelectContext(ctx, &ids, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to load occupied rooms: %w", err)
	}

	return ids, nil
}

// HasActiveLink reports whether any booked or checked in stay references the room.
func (r *repositoryImpl) HasActiveLink(ctx context.Context, roomID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+entityName+".HasActiveLink")
	defer scope.End()

	query, args, err := sqlx.In(activeLinkQuery, roomID, activeStatuses, roomID, activeStatuses)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to build active link query: %w", err)
	}

	query = r.db.Read.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool
	if err = r.db.Read.GetContext(ctx, &exist, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check active links: %w", err)
	}

	return exist, nil
}
