//go:build wireinject
// +build wireinject

package di

import (
	"resort/config"
	"resort/infras/jwt"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/infras/redis"
	"resort/infras/s3"
	"resort/infras/smtp"
	authService "resort/internal/domains/auth/service"
	availabilityRepository "resort/internal/domains/availability/repository"
	availabilityService "resort/internal/domains/availability/service"
	bookingRepository "resort/internal/domains/booking/repository"
	bookingService "resort/internal/domains/booking/service"
	checkoutRepository "resort/internal/domains/checkout/repository"
	checkoutService "resort/internal/domains/checkout/service"
	foodRepository "resort/internal/domains/food/repository"
	foodService "resort/internal/domains/food/service"
	guestService "resort/internal/domains/guest/service"
	guestServiceRepository "resort/internal/domains/guestservice/repository"
	guestServiceService "resort/internal/domains/guestservice/service"
	notificationService "resort/internal/domains/notification/service"
	packageBookingRepository "resort/internal/domains/packagebooking/repository"
	packageBookingService "resort/internal/domains/packagebooking/service"
	packageRepository "resort/internal/domains/packages/repository"
	packageService "resort/internal/domains/packages/service"
	roleRepository "resort/internal/domains/role/repository"
	roomRepository "resort/internal/domains/room/repository"
	roomService "resort/internal/domains/room/service"
	roomStatusService "resort/internal/domains/roomstatus/service"
	userRepository "resort/internal/domains/user/repository"
	userService "resort/internal/domains/user/service"
	authHandler "resort/internal/handlers/auth"
	billHandler "resort/internal/handlers/bill"
	bookingHandler "resort/internal/handlers/booking"
	foodHandler "resort/internal/handlers/food"
	guestServiceHandler "resort/internal/handlers/guestservice"
	imageHandler "resort/internal/handlers/image"
	packageBookingHandler "resort/internal/handlers/packagebooking"
	packageHandler "resort/internal/handlers/packages"
	roomHandler "resort/internal/handlers/room"
	userHandler "resort/internal/handlers/user"
	"resort/permissions"
	"resort/shared/cache"
	"resort/shared/imagestore"
	"resort/shared/lock"
	"resort/shared/transaction"
	"resort/transport/http"
	"resort/transport/http/middleware"
	"resort/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	smtp.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	imagestore.New,
	lock.New,
	transaction.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	roleRepository.New,
	authService.New,
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	availabilityRepository.New,
	availabilityService.New,
	availabilityService.NewReserver,
	roomStatusService.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	guestService.New,
	notificationService.New,
	bookingRepository.New,
	bookingRepository.NewRoomLink,
	bookingService.New,
	packageRepository.New,
	packageService.New,
	packageBookingRepository.New,
	packageBookingRepository.NewRoomLink,
	packageBookingService.New,
)

var chargesDomain = wire.NewSet(
	foodRepository.NewItem,
	foodRepository.NewOrder,
	foodRepository.NewOrderItem,
	foodService.NewItem,
	foodService.NewOrder,
	guestServiceRepository.NewService,
	guestServiceRepository.NewAssignment,
	guestServiceService.NewCatalogue,
	guestServiceService.NewAssignments,
	checkoutRepository.New,
	checkoutService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	bookingDomain,
	chargesDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	packageBookingHandler.New,
	packageHandler.New,
	foodHandler.New,
	guestServiceHandler.New,
	billHandler.New,
	imageHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeNotifier builds the confirmation mail consumer run by the worker.
func InitializeNotifier() notificationService.Notifier {
	wire.Build(
		config.Get,
		otel.New,
		smtp.New,
		kafka.New,
		notificationService.New,
	)

	return nil
}
