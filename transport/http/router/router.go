package router

import (
	"resort/internal/handlers/auth"
	"resort/internal/handlers/bill"
	"resort/internal/handlers/booking"
	"resort/internal/handlers/food"
	"resort/internal/handlers/guestservice"
	"resort/internal/handlers/image"
	"resort/internal/handlers/packagebooking"
	"resort/internal/handlers/packages"
	"resort/internal/handlers/room"
	"resort/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth           auth.Handler
	User           user.Handler
	Room           room.Handler
	Booking        booking.Handler
	PackageBooking packagebooking.Handler
	Packages       packages.Handler
	Food           food.Handler
	GuestService   guestservice.Handler
	Bill           bill.Handler
	Image          image.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.PackageBooking.Router(routerGroup)
		r.DomainHandlers.Packages.Router(routerGroup)
		r.DomainHandlers.Food.Router(routerGroup)
		r.DomainHandlers.GuestService.Router(routerGroup)
		r.DomainHandlers.Bill.Router(routerGroup)
		r.DomainHandlers.Image.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
