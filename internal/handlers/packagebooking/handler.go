package packagebooking

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/packagebooking/model"
	"resort/internal/domains/packagebooking/model/dto"
	"resort/internal/domains/packagebooking/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	"resort/shared/validator"
	"resort/transport/http/request"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formFieldIDCardImage = "id_card_image"
	formFieldGuestPhoto  = "guest_photo"

	queryParamNewCheckout = "new_checkout"
)

type Handler struct {
	service service.PackageBooking
	otel    otel.Otel
}

func New(service service.PackageBooking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/package-bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackageBooking)
		routerGroup.Post("/guest", handler.CreateGuestPackageBooking)
		routerGroup.Get("/", handler.GetPackageBookings)
		routerGroup.Get("/{id}", handler.GetPackageBookingByID)
		routerGroup.Put("/{id}/check-in", handler.CheckIn)
		routerGroup.Put("/{id}/cancel", handler.CancelPackageBooking)
		routerGroup.Put("/{id}/extend", handler.ExtendPackageBooking)
	})
}

// CreatePackageBooking books rooms under a package.
// @Summary Create a package booking
// @Description Books the given rooms for the stay at the package price. Rooms already taken on any night are rejected with 409.
// @Tags PackageBooking
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageBookingRequest true "Create Package Booking Request"
// @Success 201 {object} response.Data[dto.PackageBookingResponse] "Created package booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings [post]
// @Security BearerAuth
func (handler *Handler) CreatePackageBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackageBooking")
	defer scope.End()

	req := dto.CreatePackageBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// CreateGuestPackageBooking is the public booking endpoint.
// @Summary Create a package booking as a guest
// @Tags PackageBooking
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageBookingRequest true "Create Package Booking Request"
// @Success 201 {object} response.Data[dto.PackageBookingResponse] "Created package booking"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings/guest [post]
func (handler *Handler) CreateGuestPackageBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuestPackageBooking")
	defer scope.End()

	req := dto.CreatePackageBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateAsGuest(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest package booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest package booking created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPackageBookings lists bookings.
// @Summary Get all package bookings
// @Tags PackageBooking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters, sort_by accepts id, check_in or created_at"
// @Param status query string false "Filter by status (booked, checked-in, cancelled, checked_out)"
// @Success 200 {object} response.Data[dto.GetPackageBookingsResponse] "List of package bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetPackageBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldID, model.FieldCheckIn, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package bookings retrieved")

	response.WithJSON(w, http.StatusOK, res)
}

// GetPackageBookingByID returns one booking with its rooms.
// @Summary Get package booking by ID
// @Tags PackageBooking
// @Produce json
// @Param id path string true "Package booking ID"
// @Success 200 {object} response.Data[dto.PackageBookingResponse] "Booking"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPackageBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package booking retrieved " + id)

	response.WithJSON(w, http.StatusOK, res)
}

// CheckIn records the guest identity images and marks the booking checked in.
// @Summary Check in a package booking
// @Tags PackageBooking
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Package booking ID"
// @Param id_card_image formData file true "ID card image"
// @Param guest_photo formData file true "Guest photo"
// @Success 200 {object} response.Message "Package booking checked in successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings/{id}/check-in [put]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	idCard, err := request.FormImage(r, formFieldIDCardImage)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read id card image")

		response.WithError(w, err)

		return
	}

	photo, err := request.FormImage(r, formFieldGuestPhoto)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read guest photo")

		response.WithError(w, err)

		return
	}

	if err = handler.service.CheckIn(ctx, id, idCard, photo); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in package booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package booking checked in by user " + user)

	response.WithMessage(w, http.StatusOK, "Package booking checked in successfully")
}

// CancelPackageBooking cancels a booking.
// @Summary Cancel a package booking
// @Tags PackageBooking
// @Produce json
// @Param id path string true "Package booking ID"
// @Success 200 {object} response.Message "Package booking cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings/{id}/cancel [put]
// @Security BearerAuth
func (handler *Handler) CancelPackageBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelPackageBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel package booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package booking cancelled " + id)

	response.WithMessage(w, http.StatusOK, "Package booking cancelled successfully")
}

// ExtendPackageBooking moves the checkout date later.
// @Summary Extend a package booking
// @Tags PackageBooking
// @Accept json
// @Produce json
// @Param id path string true "Package booking ID"
// @Param request body dto.ExtendPackageBookingRequest false "Extend Package Booking Request"
// @Param new_checkout query string false "New checkout date (YYYY-MM-DD), used instead of the body"
// @Success 200 {object} response.Data[dto.PackageBookingResponse] "Extended package booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/package-bookings/{id}/extend [put]
// @Security BearerAuth
func (handler *Handler) ExtendPackageBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExtendPackageBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ExtendPackageBookingRequest{}

	if err := decodeExtend(r, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Extend(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to extend package booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package booking extended " + id)

	response.WithJSON(w, http.StatusOK, res)
}

// decodeExtend accepts the new checkout either as a query parameter or as a JSON body.
func decodeExtend(r *http.Request, req *dto.ExtendPackageBookingRequest) error {
	if newCheckout := r.URL.Query().Get(queryParamNewCheckout); newCheckout != "" {
		req.NewCheckout = newCheckout

		return validator.ValidateStruct(req)
	}

	return validator.Validate(r.Body, req)
}
