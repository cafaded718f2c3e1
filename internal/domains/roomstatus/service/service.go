// Package service derives the status shown for a room from its base status and today's stays.
// It is the only place a room's display status is decided.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"resort/config"
	"resort/infras/otel"
	availabilityRepo "resort/internal/domains/availability/repository"
	roomModel "resort/internal/domains/room/model"
	"resort/shared/constant"
	"resort/shared/timezone"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

type Reconciler interface {
	Apply(ctx context.Context, rooms []roomModel.Room) []roomModel.Room
}

type serviceImpl struct {
	repo       availabilityRepo.Availability
	otel       otel.Otel
	maxTries   uint
	initialGap time.Duration
}

func New(repo availabilityRepo.Availability, cfg *config.Config, otel otel.Otel) Reconciler {
	return &serviceImpl{
		repo:       repo,
		otel:       otel,
		maxTries:   uint(max(cfg.Booking.ReconcilerMaxRetry, 1)),
		initialGap: time.Duration(max(cfg.Booking.ReconcilerBackoffMillis, 1)) * time.Millisecond,
	}
}

// Derive is the status rule: maintenance wins, then an active stay covering today, then available.
func Derive(stored string, occupied bool) string {
	switch {
	case stored == constant.RoomStatusMaintenance:
		return constant.RoomStatusMaintenance
	case occupied:
		return constant.RoomStatusOccupied
	default:
		return constant.RoomStatusAvailable
	}
}

// Apply returns a copy of rooms with derived statuses. When occupancy cannot be loaded after
// retrying, the stored statuses are returned unchanged.
func (s *serviceImpl) Apply(ctx context.Context, rooms []roomModel.Room) []roomModel.Room {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomstatus.Apply")
	defer scope.End()

	if len(rooms) == 0 {
		return rooms
	}

	ids := roomModel.IDs(rooms)
	today := timezone.Today()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.initialGap

	occupied, err := backoff.Retry(ctx, func() ([]string, error) {
		return s.repo.OccupiedRoomIDs(ctx, ids, today)
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().Err(err).Dur("retry_in", next).Msg("retrying room occupancy lookup")
		}),
	)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("room status reconciliation failed, serving stored statuses")

		return rooms
	}

	res := slices.Clone(rooms)
	for i := range res {
		res[i].Status = Derive(res[i].Status, slices.Contains(occupied, res[i].ID))
	}

	return res
}
