package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/infras/otel"
	"resort/internal/domains/availability/repository"
	"resort/shared/constant"
	"resort/shared/daterange"
	"resort/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Checker interface {
	// EnsureAvailable fails with a conflict naming the first taken room. It must run inside the
	// transaction that holds the room row locks.
	EnsureAvailable(ctx context.Context, tx *sqlx.Tx, roomIDs []string, stay daterange.DateRange, exclude repository.Exclude) error
	// Unavailable returns the set of roomIDs that cannot host stay.
	Unavailable(ctx context.Context, roomIDs []string, stay daterange.DateRange) (map[string]bool, error)
	HasActiveBooking(ctx context.Context, roomID string) (bool, error)
}

type serviceImpl struct {
	repo repository.Availability
	otel otel.Otel
}

func New(repo repository.Availability, otel otel.Otel) Checker {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) EnsureAvailable(ctx context.Context, tx *sqlx.Tx, roomIDs []string, stay daterange.DateRange, exclude repository.Exclude) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conflicts, err := s.repo.Conflicts(ctx, tx, roomIDs, stay, exclude)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return err
	}

	if len(conflicts) > 0 {
		log.Warn().Str("room", conflicts[0].RoomNumber).Msg("room already taken for requested dates")

		return failure.Conflict(fmt.Sprintf("Room %s is not available for the selected dates.", conflicts[0].RoomNumber))
	}

	return nil
}

func (s *serviceImpl) Unavailable(ctx context.Context, roomIDs []string, stay daterange.DateRange) (res map[string]bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unavailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conflicts, err := s.repo.Conflicts(ctx, nil, roomIDs, stay, repository.Exclude{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load unavailable rooms")

		return nil, err
	}

	res = make(map[string]bool, len(conflicts))
	for _, c := range conflicts {
		res[c.RoomID] = true
	}

	return res, nil
}

func (s *serviceImpl) HasActiveBooking(ctx context.Context, roomID string) (exist bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasActiveBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err = s.repo.HasActiveLink(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check active bookings")

		return false, err
	}

	return exist, nil
}
