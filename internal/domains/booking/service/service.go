package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"resort/config"
	"resort/infras/otel"
	availabilityRepository "resort/internal/domains/availability/repository"
	availabilityService "resort/internal/domains/availability/service"
	"resort/internal/domains/booking/model"
	"resort/internal/domains/booking/model/dto"
	"resort/internal/domains/booking/repository"
	guestService "resort/internal/domains/guest/service"
	notificationModel "resort/internal/domains/notification/model"
	notificationService "resort/internal/domains/notification/service"
	roomModel "resort/internal/domains/room/model"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	"resort/shared/daterange"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/imagestore"
	"resort/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Booking list and count keys are also dropped by checkout.
const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:get_all"
	CacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateAsGuest(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string, idCard, photo imagestore.Image) error
	Cancel(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	links    repository.RoomLink
	reserver availabilityService.Reserver
	guests   guestService.Resolver
	notifier notificationService.Notifier
	images   imagestore.Store
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	links repository.RoomLink,
	reserver availabilityService.Reserver,
	guests guestService.Resolver,
	notifier notificationService.Notifier,
	images imagestore.Store,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		links:    links,
		reserver: reserver,
		guests:   guests,
		notifier: notifier,
		images:   images,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req.Normalize()

	stay, err := req.Stay()
	if err != nil {
		return res, err
	}

	return s.create(ctx, req, stay, user)
}

// CreateAsGuest is the public booking path. It refuses a second active booking with the
// same contact details and dates.
func (s *serviceImpl) CreateAsGuest(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CreateAsGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	stay, err := req.Stay()
	if err != nil {
		return res, err
	}

	duplicate := model.Booking{GuestEmail: req.GuestEmail, GuestMobile: req.GuestMobile, CheckIn: stay.CheckIn, CheckOut: stay.CheckOut}

	exist, err := s.repo.Exist(ctx, repository.FilterDuplicate(duplicate))
	if err != nil {
		log.Error().Err(err).Msg("failed to check duplicate booking")

		return res, fmt.Errorf("failed to check duplicate booking: %w", err)
	}

	if exist {
		return res, failure.Conflict("A booking with the same details and dates already exists.")
	}

	return s.create(ctx, req, stay, constant.ContextGuest)
}

func (s *serviceImpl) create(ctx context.Context, req dto.CreateBookingRequest, stay daterange.DateRange, user string) (res dto.BookingResponse, err error) {
	guestID, err := s.guests.Resolve(ctx, req.GuestEmail, req.GuestMobile, req.GuestName)
	if err != nil {
		log.Warn().Err(err).Str("email", req.GuestEmail).Msg("failed to resolve guest, booking will not be linked")

		guestID = constant.Empty
	}

	req.GuestName = s.knownGuestName(ctx, req.GuestEmail, req.GuestMobile, req.GuestName)

	booking := req.ToModel(user, guestID, stay)
	links := req.ToLinks(booking.ID, user)

	var booked []roomModel.Room

	reservation := availabilityService.Reservation{
		Owner:   booking.ID,
		RoomIDs: req.RoomIDs,
		Stay:    stay,
	}

	err = s.reserver.Reserve(ctx, reservation, func(tx *sqlx.Tx, rooms []roomModel.Room) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.links.InsertBulkTx(ctx, tx, links); err != nil {
			return err
		}

		booked = rooms

		return nil
	})
	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking, linkedRooms(booking.ID, booked))

	s.invalidate(ctx, booking.ID)
	s.notify(ctx, booking, booked)

	return res, nil
}

// knownGuestName reuses the name from the latest booking with the same contact details so one
// guest keeps one spelling across stays.
func (s *serviceImpl) knownGuestName(ctx context.Context, email, mobile, name string) string {
	if email == constant.Empty || mobile == constant.Empty {
		return name
	}

	params := gDto.QueryParams{Page: 1, Limit: 1, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	latest, err := s.repo.GetAll(ctx, params, repository.FilterByGuest(email, mobile))
	if err != nil {
		log.Warn().Err(err).Msg("failed to look up previous bookings for guest name")

		return name
	}

	if len(latest) == 0 || latest[0].GuestName == constant.Empty {
		return name
	}

	return latest[0].GuestName
}

func (s *serviceImpl) notify(ctx context.Context, booking model.Booking, rooms []roomModel.Room) {
	confirmation := notificationModel.BookingConfirmation{
		BookingID:  booking.ID,
		Kind:       notificationModel.KindBooking,
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Rooms:      make([]notificationModel.Room, len(rooms)),
	}

	for i, room := range rooms {
		confirmation.Rooms[i] = notificationModel.Room{Number: room.Number, Type: room.Type}
	}

	go func() {
		if err := s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), confirmation); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking confirmation")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	ids := make([]string, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	rooms, err := s.roomsOf(ctx, ids)
	if err != nil {
		return res, err
	}

	res.FromModels(bookings, rooms, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return total, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return total, nil
}

// roomsOf loads the rooms of every booking in ids keyed by booking id.
func (s *serviceImpl) roomsOf(ctx context.Context, ids []string) (map[string][]model.LinkedRoom, error) {
	res := make(map[string][]model.LinkedRoom, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: roomModel.TableName + "." + roomModel.FieldNumber, SortDir: gDto.SortDirAsc}

	rooms, err := s.links.GetAll(ctx, params, repository.FilterLinksByBookingIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return nil, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	for _, room := range rooms {
		res[room.BookingID] = append(res[room.BookingID], room)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	rooms, err := s.roomsOf(ctx, []string{id})
	if err != nil {
		return res, err
	}

	res.FromModel(booking, rooms[id])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("Booking not found")
	}

	return booking, nil
}

// CheckIn stores both identity images and moves a booked stay to checked-in.
func (s *serviceImpl) CheckIn(ctx context.Context, id string, idCard, photo imagestore.Image) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusBooked {
		return failure.InvalidState(fmt.Sprintf("Booking is not in 'booked' state. Current status: %s", booking.Status))
	}

	idCardRef, err := s.images.Put(ctx, imagestore.DirectoryCheckIn, idCard.ContentType, idCard.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to store id card image")

		return fmt.Errorf("failed to store id card image: %w", err)
	}

	photoRef, err := s.images.Put(ctx, imagestore.DirectoryCheckIn, photo.ContentType, photo.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to store guest photo")
		s.discard(ctx, idCardRef)

		return fmt.Errorf("failed to store guest photo: %w", err)
	}

	fields := map[string]any{
		model.FieldStatus:        constant.BookingStatusCheckedIn,
		model.FieldCheckedInBy:   user,
		model.FieldIDCardImage:   idCardRef,
		model.FieldGuestPhoto:    photoRef,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check in booking")
		s.discard(ctx, idCardRef, photoRef)

		return fmt.Errorf("failed to check in booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) discard(ctx context.Context, refs ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, ref := range refs {
			if err := s.images.Delete(c, ref); err != nil {
				log.Error().Err(err).Str("ref", ref).Msg("failed to delete orphaned check-in image")
			}
		}
	}()
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	fields := map[string]any{
		model.FieldStatus:        constant.BookingStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Extend moves the checkout later. The added nights are checked against every other active
// stay under the same locks as a new booking.
func (s *serviceImpl) Extend(ctx context.Context, id string, req dto.ExtendBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Extend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	newCheckout, err := time.Parse(constant.DateOnlyFormat, req.NewCheckout)
	if err != nil {
		return res, failure.BadRequestFromString("invalid new checkout date")
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.Active() {
		return res, failure.InvalidState(fmt.Sprintf("Only booked or checked-in bookings can be extended. Current status: %s", booking.Status))
	}

	extension, err := daterange.New(booking.CheckOut, newCheckout)
	if err != nil {
		return res, failure.BadRequestFromString("New checkout must be after current checkout")
	}

	linked, err := s.roomsOf(ctx, []string{id})
	if err != nil {
		return res, err
	}

	roomIDs := make([]string, len(linked[id]))
	for i, room := range linked[id] {
		roomIDs[i] = room.RoomID
	}

	reservation := availabilityService.Reservation{
		Owner:   id,
		RoomIDs: roomIDs,
		Stay:    extension,
		Exclude: availabilityRepository.Exclude{BookingID: id},
	}

	now := timezone.Now()

	fields := map[string]any{
		model.FieldCheckOut:      extension.CheckOut,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	err = s.reserver.Reserve(ctx, reservation, func(tx *sqlx.Tx, _ []roomModel.Room) error {
		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			return res, err
		}

		log.Error().Err(err).Msg("failed to extend booking")

		return res, fmt.Errorf("failed to extend booking: %w", err)
	}

	booking.CheckOut = extension.CheckOut
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	res.FromModel(booking, linked[id])

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, CacheCountBooking)
	}()
}

func linkedRooms(bookingID string, rooms []roomModel.Room) []model.LinkedRoom {
	res := make([]model.LinkedRoom, len(rooms))
	for i, room := range rooms {
		res[i] = model.LinkedRoom{
			BookingID: bookingID,
			RoomID:    room.ID,
			Number:    room.Number,
			Type:      room.Type,
			Price:     room.Price,
			Adults:    room.Adults,
			Children:  room.Children,
		}
	}

	return res
}
