package service

//go:generate go run go.uber.org/mock/mockgen -source=./assignment.go -destination=./mocks/assignment_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/guestservice/model"
	"resort/internal/domains/guestservice/model/dto"
	"resort/internal/domains/guestservice/repository"
	roomModel "resort/internal/domains/room/model"
	roomRepository "resort/internal/domains/room/repository"
	userRepository "resort/internal/domains/user/repository"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Assignment list keys are also dropped by checkout when lines get billed.
const (
	CacheGetAllAssignment = "assigned_service:get_all"
	CacheCountAssignment  = "assigned_service:count"
)

type Assignments interface {
	Assign(ctx context.Context, req dto.AssignRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAssignmentsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateAssignmentRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo     repository.Assignment
	services repository.Service
	rooms    roomRepository.Room
	users    userRepository.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func NewAssignments(
	repo repository.Assignment,
	services repository.Service,
	rooms roomRepository.Room,
	users userRepository.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Assignments {
	return &assignmentService{
		repo:     repo,
		services: services,
		rooms:    rooms,
		users:    users,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *assignmentService) Assign(ctx context.Context, req dto.AssignRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".service.Assign")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checks := []struct {
		exist   func(context.Context, gDto.FilterGroup) (bool, error)
		filter  gDto.FilterGroup
		missing string
	}{
		{s.services.Exist, shared.FilterByID(req.ServiceID, model.FieldID, model.TableService), "service not found"},
		{s.users.Exist, userRepository.FilterEmployee(req.EmployeeID), "employee not found or inactive"},
		{s.rooms.Exist, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName), "room not found"},
	}

	for _, check := range checks {
		exist, err := check.exist(ctx, check.filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to check service assignment reference")

			return fmt.Errorf("failed to check service assignment reference: %w", err)
		}

		if !exist {
			return failure.NotFound(check.missing)
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to assign service")

		return fmt.Errorf("failed to assign service: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *assignmentService) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAssignmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".service.GetAllAssignments")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllAssignment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for assigned services")

		return res, nil
	}

	countKey := shared.BuildCacheKeyWithQuery(CacheCountAssignment, req, filter)

	var total int
	if err = s.cache.Get(ctx, countKey, &total); err != nil {
		total, err = s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count assigned services")

			return res, fmt.Errorf("failed to count assigned services: %w", err)
		}
	}

	assignments, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get assigned services")

		return res, fmt.Errorf("failed to get assigned services: %w", err)
	}

	res.FromModels(assignments, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, countKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save assigned service count to cache")
		}

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save assigned services to cache")
		}
	}()

	return res, nil
}

func (s *assignmentService) get(ctx context.Context, id string) (model.Assignment, error) {
	assignment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableAssignment))
	if err != nil {
		log.Error().Err(err).Msg("failed to get assigned service")

		return assignment, fmt.Errorf("failed to get assigned service: %w", err)
	}

	if assignment.ID == constant.Empty {
		return assignment, failure.NotFound("assigned service not found")
	}

	if assignment.BillingStatus == constant.BillingStatusBilled {
		return assignment, failure.InvalidState("assigned service has already been billed")
	}

	return assignment, nil
}

// UpdateStatus moves an unbilled assignment along pending, in_progress, completed or to cancelled.
// Setting the current status again is accepted and changes nothing.
func (s *assignmentService) UpdateStatus(
	ctx context.Context,
	id string,
	req dto.UpdateAssignmentRequest,
) (res dto.AssignmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".service.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	assignment, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if assignment.Status == req.Status {
		res.FromModel(assignment)

		return res, nil
	}

	if !model.CanTransition(assignment.Status, req.Status) {
		return res, failure.InvalidState(fmt.Sprintf("cannot change service status from %s to %s", assignment.Status, req.Status))
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableAssignment)); err != nil {
		log.Error().Err(err).Msg("failed to update assigned service status")

		return res, fmt.Errorf("failed to update assigned service status: %w", err)
	}

	assignment.Status = req.Status
	assignment.ModifiedAt = now
	assignment.ModifiedBy = user
	res.FromModel(assignment)

	s.invalidate(ctx)

	return res, nil
}

func (s *assignmentService) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".service.DeleteAssignment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableAssignment)); err != nil {
		log.Error().Err(err).Msg("failed to delete assigned service")

		return fmt.Errorf("failed to delete assigned service: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *assignmentService) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, CacheGetAllAssignment)
		shared.InvalidateCaches(c, s.cache, CacheCountAssignment)
	}()
}
