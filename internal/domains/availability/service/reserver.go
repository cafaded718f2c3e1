package service

//go:generate go run go.uber.org/mock/mockgen -source=./reserver.go -destination=../mocks/reserver_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/availability/repository"
	roomModel "resort/internal/domains/room/model"
	roomRepository "resort/internal/domains/room/repository"
	"resort/shared/constant"
	"resort/shared/daterange"
	"resort/shared/failure"
	"resort/shared/lock"
	"resort/shared/transaction"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Reservation describes rooms to hold for a stay. Owner identifies the lock holder and is
// normally the id of the booking being written.
type Reservation struct {
	Owner   string
	RoomIDs []string
	Stay    daterange.DateRange
	Exclude repository.Exclude
}

// WriteFunc persists the booking once the rooms are locked and known to be free.
type WriteFunc func(tx *sqlx.Tx, rooms []roomModel.Room) error

type Reserver interface {
	Reserve(ctx context.Context, reservation Reservation, write WriteFunc) error
}

type reserverImpl struct {
	locker  lock.Locker
	tx      transaction.Transaction
	rooms   roomRepository.Room
	checker Checker
	cfg     *config.Config
	otel    otel.Otel
}

func NewReserver(
	locker lock.Locker,
	tx transaction.Transaction,
	rooms roomRepository.Room,
	checker Checker,
	cfg *config.Config,
	otel otel.Otel,
) Reserver {
	return &reserverImpl{
		locker:  locker,
		tx:      tx,
		rooms:   rooms,
		checker: checker,
		cfg:     cfg,
		otel:    otel,
	}
}

// Reserve takes the redis room locks, then inside one transaction row locks the rooms,
// checks both booking kinds for overlaps and calls write. Locks are released afterwards
// whatever the outcome.
func (s *reserverImpl) Reserve(ctx context.Context, reservation Reservation, write WriteFunc) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids := slices.Clone(reservation.RoomIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		return failure.BadRequestFromString("at least one room is required")
	}

	ttl := time.Duration(max(s.cfg.Booking.RoomLockTTLSeconds, 1)) * time.Second

	if err = s.locker.Acquire(ctx, ids, reservation.Owner, ttl); err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return failure.Conflict("One or more rooms are being booked by another request. Please try again.")
		}

		log.Error().Err(err).Msg("failed to acquire room locks")

		return fmt.Errorf("failed to acquire room locks: %w", err)
	}

	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), ids, reservation.Owner); err != nil {
			log.Error().Err(err).Str("owner", reservation.Owner).Msg("failed to release room locks")
		}
	}()

	return s.tx.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		rooms, err := s.rooms.LockForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		if missing := missingRoom(ids, rooms); missing != constant.Empty {
			return failure.NotFound(fmt.Sprintf("room %s not found", missing))
		}

		if err := s.checker.EnsureAvailable(ctx, tx, ids, reservation.Stay, reservation.Exclude); err != nil {
			return err
		}

		return write(tx, rooms)
	})
}

func missingRoom(ids []string, rooms []roomModel.Room) string {
	found := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		found[room.ID] = true
	}

	for _, id := range ids {
		if !found[id] {
			return id
		}
	}

	return constant.Empty
}
