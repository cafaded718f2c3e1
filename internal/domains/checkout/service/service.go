package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	bookingModel "resort/internal/domains/booking/model"
	bookingRepository "resort/internal/domains/booking/repository"
	bookingService "resort/internal/domains/booking/service"
	"resort/internal/domains/checkout/model"
	"resort/internal/domains/checkout/model/dto"
	"resort/internal/domains/checkout/repository"
	foodRepository "resort/internal/domains/food/repository"
	foodService "resort/internal/domains/food/service"
	guestServiceRepository "resort/internal/domains/guestservice/repository"
	guestServiceService "resort/internal/domains/guestservice/service"
	packageBookingModel "resort/internal/domains/packagebooking/model"
	packageBookingRepository "resort/internal/domains/packagebooking/repository"
	packageBookingService "resort/internal/domains/packagebooking/service"
	roomRepository "resort/internal/domains/room/repository"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	"resort/shared/daterange"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"
	"resort/shared/transaction"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	CacheGetAllCheckout = "checkout:get_all"
	CacheCountCheckout  = "checkout:count"
)

type Checkout interface {
	GetBill(ctx context.Context, roomNumber string) (dto.BillResponse, error)
	Checkout(ctx context.Context, roomNumber string, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCheckoutsResponse, error)
	GetActiveRooms(ctx context.Context) ([]dto.ActiveRoomResponse, error)
}

type serviceImpl struct {
	repo            repository.Checkout
	rooms           roomRepository.Room
	bookings        bookingRepository.Booking
	bookingLinks    bookingRepository.RoomLink
	packageBookings packageBookingRepository.PackageBooking
	packageLinks    packageBookingRepository.RoomLink
	orders          foodRepository.Order
	orderLines      foodRepository.OrderItem
	assignments     guestServiceRepository.Assignment
	tx              transaction.Transaction
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Checkout,
	rooms roomRepository.Room,
	bookings bookingRepository.Booking,
	bookingLinks bookingRepository.RoomLink,
	packageBookings packageBookingRepository.PackageBooking,
	packageLinks packageBookingRepository.RoomLink,
	orders foodRepository.Order,
	orderLines foodRepository.OrderItem,
	assignments guestServiceRepository.Assignment,
	tx transaction.Transaction,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Checkout {
	return &serviceImpl{
		repo:            repo,
		rooms:           rooms,
		bookings:        bookings,
		bookingLinks:    bookingLinks,
		packageBookings: packageBookings,
		packageLinks:    packageLinks,
		orders:          orders,
		orderLines:      orderLines,
		assignments:     assignments,
		tx:              tx,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) GetBill(ctx context.Context, roomNumber string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkout.GetBill")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomID, err := s.roomID(ctx, roomNumber)
	if err != nil {
		return res, err
	}

	stay, found, err := s.findStay(ctx, roomID, bookingModel.ActiveStatuses)
	if err != nil {
		return res, err
	}

	if !found {
		return res, failure.NotFound(fmt.Sprintf("No active booking found for room %s", roomNumber))
	}

	bill, err := s.compute(ctx, stay)
	if err != nil {
		return res, err
	}

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, roomNumber string, req dto.CheckoutRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkout.Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	roomID, err := s.roomID(ctx, roomNumber)
	if err != nil {
		return res, err
	}

	stay, found, err := s.findStay(ctx, roomID, bookingModel.ActiveStatuses)
	if err != nil {
		return res, err
	}

	if !found {
		latest, found, err := s.latestStay(ctx, roomID)
		if err != nil {
			return res, err
		}

		if found && latest.Status == constant.BookingStatusCheckedOut {
			return res, failure.Conflict("This booking has already been checked out.")
		}

		return res, failure.NotFound(fmt.Sprintf("No active booking found for room %s", roomNumber))
	}

	if stay.Status == constant.BookingStatusCheckedOut {
		return res, failure.Conflict("This booking has already been checked out.")
	}

	bill, err := s.compute(ctx, stay)
	if err != nil {
		return res, err
	}

	tax, discount, grandTotal := bill.Settle(s.cfg.Booking.TaxRatePercent, req.DiscountAmount)
	checkout := req.ToModel(bill, tax, discount, grandTotal, user)

	roomIDs := make([]string, len(stay.Rooms))
	for i, room := range stay.Rooms {
		roomIDs[i] = room.ID
	}

	now := timezone.Now()

	billed := map[string]any{
		constant.FieldBillingStatus: constant.BillingStatusBilled,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    user,
	}

	checkedOut := map[string]any{
		bookingModel.FieldStatus: constant.BookingStatusCheckedOut,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	err = s.tx.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, checkout); err != nil {
			return err
		}

		if err := s.orders.UpdateTx(ctx, tx, billed, filterUnbilledOrders(roomIDs)); err != nil {
			return err
		}

		if err := s.assignments.UpdateTx(ctx, tx, billed, filterUnbilledAssignments(roomIDs)); err != nil {
			return err
		}

		if stay.IsPackage() {
			return s.packageBookings.UpdateTx(ctx, tx, checkedOut,
				shared.FilterByID(stay.PackageBookingID, packageBookingModel.FieldID, packageBookingModel.TableName))
		}

		return s.bookings.UpdateTx(ctx, tx, checkedOut, shared.FilterByID(stay.BookingID, bookingModel.FieldID, bookingModel.TableName))
	})
	if err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict("This booking has already been checked out.")
		}

		log.Error().Err(err).Str("room", roomNumber).Msg("failed to finalize checkout")

		return res, failure.InternalError(fmt.Errorf("failed to finalize checkout: %w", err))
	}

	res.FromModel(checkout)

	s.invalidate(ctx, stay)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, stay model.Stay) {
	go func() {
		c := context.WithoutCancel(ctx)

		prefixes := []string{
			CacheGetAllCheckout,
			CacheCountCheckout,
			foodService.CacheGetOrder,
			foodService.CacheGetAllOrder,
			foodService.CacheCountOrder,
			guestServiceService.CacheGetAllAssignment,
			guestServiceService.CacheCountAssignment,
		}

		if stay.IsPackage() {
			if err := s.cache.Delete(c, shared.BuildCacheKey(packageBookingService.CacheGetPackageBooking, stay.PackageBookingID)); err != nil {
				log.Error().Err(err).Msg("failed to delete package booking cache")
			}

			prefixes = append(prefixes, packageBookingService.CacheGetAllPackageBooking, packageBookingService.CacheCountPackageBooking)
		} else {
			if err := s.cache.Delete(c, shared.BuildCacheKey(bookingService.CacheGetBooking, stay.BookingID)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}

			prefixes = append(prefixes, bookingService.CacheGetAllBooking, bookingService.CacheCountBooking)
		}

		for _, prefix := range prefixes {
			shared.InvalidateCaches(c, s.cache, prefix)
		}
	}()
}

func (s *serviceImpl) roomID(ctx context.Context, roomNumber string) (string, error) {
	room, err := s.rooms.Get(ctx, filterRoomByNumber(roomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return constant.Empty, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return constant.Empty, failure.NotFound("Initial room not found.")
	}

	return room.ID, nil
}

// findStay returns the latest booking in one of the statuses that holds the room.
// Regular bookings win over package bookings.
func (s *serviceImpl) findStay(ctx context.Context, roomID string, statuses []string) (model.Stay, bool, error) {
	stay, found, err := s.findBooking(ctx, roomID, statuses)
	if err != nil || found {
		return stay, found, err
	}

	return s.findPackageBooking(ctx, roomID, statuses)
}

// latestStay returns the room's most recent stay by check-in, whatever its status.
func (s *serviceImpl) latestStay(ctx context.Context, roomID string) (model.Stay, bool, error) {
	booking, bookingFound, err := s.findBooking(ctx, roomID, nil)
	if err != nil {
		return booking, false, err
	}

	pkg, pkgFound, err := s.findPackageBooking(ctx, roomID, nil)
	if err != nil {
		return pkg, false, err
	}

	if pkgFound && (!bookingFound || pkg.CheckIn.After(booking.CheckIn)) {
		return pkg, true, nil
	}

	return booking, bookingFound, nil
}

func (s *serviceImpl) findBooking(ctx context.Context, roomID string, statuses []string) (stay model.Stay, found bool, err error) {
	links, err := s.bookingLinks.GetAll(ctx, gDto.QueryParams{}, filterLinksByRoom(roomID, bookingModel.TableRoomLink))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking links of room")

		return stay, false, fmt.Errorf("failed to get booking links: %w", err)
	}

	if len(links) == 0 {
		return stay, false, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.BookingID
	}

	bookings, err := s.bookings.GetAll(ctx, latestByCheckIn(bookingModel.TableName), filterByIDsAndStatus(ids, statuses, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings of room")

		return stay, false, fmt.Errorf("failed to get bookings: %w", err)
	}

	if len(bookings) == 0 {
		return stay, false, nil
	}

	booking := bookings[0]

	rooms, err := s.bookingLinks.GetAll(ctx, gDto.QueryParams{}, bookingRepository.FilterLinksByBookingIDs([]string{booking.ID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return stay, false, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	if len(rooms) == 0 {
		return stay, false, failure.NotFound(fmt.Sprintf("No rooms linked to booking %s", booking.ID))
	}

	stay = model.Stay{
		BookingID: booking.ID,
		GuestName: booking.GuestName,
		Status:    booking.Status,
		CheckIn:   booking.CheckIn,
		CheckOut:  booking.CheckOut,
		Guests:    booking.Adults + booking.Children,
		Rooms:     make([]model.Room, len(rooms)),
	}

	for i, room := range rooms {
		stay.Rooms[i] = model.Room{ID: room.RoomID, Number: room.Number, Price: room.Price}
	}

	return stay, true, nil
}

func (s *serviceImpl) findPackageBooking(ctx context.Context, roomID string, statuses []string) (stay model.Stay, found bool, err error) {
	links, err := s.packageLinks.GetAll(ctx, gDto.QueryParams{}, filterLinksByRoom(roomID, packageBookingModel.TableRoomLink))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package booking links of room")

		return stay, false, fmt.Errorf("failed to get package booking links: %w", err)
	}

	if len(links) == 0 {
		return stay, false, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.PackageBookingID
	}

	bookings, err := s.packageBookings.GetAll(ctx,
		latestByCheckIn(packageBookingModel.TableName),
		filterByIDsAndStatus(ids, statuses, packageBookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package bookings of room")

		return stay, false, fmt.Errorf("failed to get package bookings: %w", err)
	}

	if len(bookings) == 0 {
		return stay, false, nil
	}

	booking := bookings[0]

	rooms, err := s.packageLinks.GetAll(ctx, gDto.QueryParams{}, packageBookingRepository.FilterLinksByBookingIDs([]string{booking.ID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package booking rooms")

		return stay, false, fmt.Errorf("failed to get package booking rooms: %w", err)
	}

	if len(rooms) == 0 {
		return stay, false, failure.NotFound(fmt.Sprintf("No rooms linked to package booking %s", booking.ID))
	}

	stay = model.Stay{
		PackageBookingID: booking.ID,
		GuestName:        booking.GuestName,
		Status:           booking.Status,
		CheckIn:          booking.CheckIn,
		CheckOut:         booking.CheckOut,
		Guests:           booking.Adults + booking.Children,
		PackagePrice:     booking.PackagePrice,
		Rooms:            make([]model.Room, len(rooms)),
	}

	for i, room := range rooms {
		stay.Rooms[i] = model.Room{ID: room.RoomID, Number: room.Number, Price: room.Price}
	}

	return stay, true, nil
}

// compute builds the bill for a stay from its rooms and the unbilled charges on them.
func (s *serviceImpl) compute(ctx context.Context, stay model.Stay) (bill model.Bill, err error) {
	bill.Stay = stay
	bill.Nights = daterange.DateRange{CheckIn: stay.CheckIn, CheckOut: stay.CheckOut}.Nights()

	roomIDs := make([]string, len(stay.Rooms))
	for i, room := range stay.Rooms {
		roomIDs[i] = room.ID
	}

	if stay.IsPackage() {
		bill.PackageCharges = model.Round2(stay.PackagePrice * float64(len(stay.Rooms)) * float64(bill.Nights))
	} else {
		for _, room := range stay.Rooms {
			bill.RoomCharges += room.Price * float64(bill.Nights)
		}

		bill.RoomCharges = model.Round2(bill.RoomCharges)
	}

	if bill.FoodLines, err = s.foodLines(ctx, roomIDs); err != nil {
		return bill, err
	}

	for _, line := range bill.FoodLines {
		bill.FoodCharges += line.Amount
	}

	bill.FoodCharges = model.Round2(bill.FoodCharges)

	if bill.ServiceLines, err = s.serviceLines(ctx, roomIDs); err != nil {
		return bill, err
	}

	for _, line := range bill.ServiceLines {
		bill.ServiceCharges += line.Charges
	}

	bill.ServiceCharges = model.Round2(bill.ServiceCharges)

	return bill, nil
}

func (s *serviceImpl) foodLines(ctx context.Context, roomIDs []string) ([]model.FoodLine, error) {
	orders, err := s.orders.GetAll(ctx, gDto.QueryParams{}, filterUnbilledOrders(roomIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unbilled food orders")

		return nil, fmt.Errorf("failed to get unbilled food orders: %w", err)
	}

	if len(orders) == 0 {
		return []model.FoodLine{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	details, err := s.orderLines.GetAll(ctx, gDto.QueryParams{}, foodRepository.FilterLinesByOrderIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to get food order lines")

		return nil, fmt.Errorf("failed to get food order lines: %w", err)
	}

	lines := make([]model.FoodLine, len(details))
	for i, detail := range details {
		lines[i] = model.FoodLine{
			OrderID:  detail.OrderID,
			ItemName: detail.ItemName,
			Quantity: detail.Quantity,
			Amount:   model.Round2(float64(detail.Quantity) * detail.ItemPrice),
		}
	}

	return lines, nil
}

func (s *serviceImpl) serviceLines(ctx context.Context, roomIDs []string) ([]model.ServiceLine, error) {
	assignments, err := s.assignments.GetAll(ctx, gDto.QueryParams{}, filterUnbilledAssignments(roomIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unbilled service assignments")

		return nil, fmt.Errorf("failed to get unbilled service assignments: %w", err)
	}

	lines := make([]model.ServiceLine, len(assignments))
	for i, assignment := range assignments {
		lines[i] = model.ServiceLine{
			AssignmentID: assignment.ID,
			ServiceName:  assignment.ServiceName,
			Charges:      assignment.Charges,
		}
	}

	return lines, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCheckoutsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkout.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllCheckout, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for checkouts")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	checkouts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get checkouts")

		return res, fmt.Errorf("failed to get checkouts: %w", err)
	}

	res.FromModels(checkouts, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save checkouts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountCheckout, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count checkouts")

		return total, fmt.Errorf("failed to count checkouts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save checkout count to cache")
		}
	}()

	return total, nil
}

// GetActiveRooms lists every room held by an active booking once, ordered by room number.
func (s *serviceImpl) GetActiveRooms(ctx context.Context) (res []dto.ActiveRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkout.GetActiveRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guests := map[string]string{}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, filterByStatus(bookingModel.ActiveStatuses, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	if len(bookings) > 0 {
		names := make(map[string]string, len(bookings))
		ids := make([]string, len(bookings))

		for i, booking := range bookings {
			ids[i] = booking.ID
			names[booking.ID] = booking.GuestName
		}

		links, err := s.bookingLinks.GetAll(ctx, gDto.QueryParams{}, bookingRepository.FilterLinksByBookingIDs(ids))
		if err != nil {
			log.Error().Err(err).Msg("failed to get active booking rooms")

			return nil, fmt.Errorf("failed to get active booking rooms: %w", err)
		}

		for _, link := range links {
			if _, ok := guests[link.Number]; !ok {
				guests[link.Number] = names[link.BookingID]
			}
		}
	}

	packageBookings, err := s.packageBookings.GetAll(ctx, gDto.QueryParams{}, filterByStatus(packageBookingModel.ActiveStatuses, packageBookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active package bookings")

		return nil, fmt.Errorf("failed to get active package bookings: %w", err)
	}

	if len(packageBookings) > 0 {
		names := make(map[string]string, len(packageBookings))
		ids := make([]string, len(packageBookings))

		for i, booking := range packageBookings {
			ids[i] = booking.ID
			names[booking.ID] = booking.GuestName
		}

		links, err := s.packageLinks.GetAll(ctx, gDto.QueryParams{}, packageBookingRepository.FilterLinksByBookingIDs(ids))
		if err != nil {
			log.Error().Err(err).Msg("failed to get active package booking rooms")

			return nil, fmt.Errorf("failed to get active package booking rooms: %w", err)
		}

		for _, link := range links {
			if _, ok := guests[link.Number]; !ok {
				guests[link.Number] = names[link.PackageBookingID]
			}
		}
	}

	rooms := make([]model.ActiveRoom, 0, len(guests))
	for number, guest := range guests {
		rooms = append(rooms, model.ActiveRoom{Number: number, GuestName: guest})
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })

	return dto.FromActiveRooms(rooms), nil
}
