package bill

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/checkout/model"
	"resort/internal/domains/checkout/model/dto"
	"resort/internal/domains/checkout/service"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const requestParamRoomNumber = "room_number"

type Handler struct {
	service service.Checkout
	otel    otel.Otel
}

func New(service service.Checkout, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bill", func(routerGroup chi.Router) {
		routerGroup.Get("/checkouts", handler.GetCheckouts)
		routerGroup.Get("/active-rooms", handler.GetActiveRooms)
		routerGroup.Get("/{room_number}", handler.GetBill)
		routerGroup.Post("/checkout/{room_number}", handler.Checkout)
	})
}

// GetCheckouts lists finished checkouts, newest first.
// @Summary Get checkout history
// @Tags Bill
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters, sort_by accepts created_at, checkout_date or grand_total"
// @Param guest_name query string false "Filter by guest name"
// @Success 200 {object} response.Data[dto.GetCheckoutsResponse] "Checkout history"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bill/checkouts [get]
// @Security BearerAuth
func (handler *Handler) GetCheckouts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCheckouts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, constant.FieldCreatedAt, model.FieldCheckoutDate, model.FieldGrandTotal)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if guestName := r.URL.Query().Get(model.FieldGuestName); guestName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestName,
			Operator: gDto.FilterOperatorLike,
			Value:    guestName,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get checkouts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkouts retrieved")

	response.WithJSON(w, http.StatusOK, res)
}

// GetActiveRooms lists rooms held by active bookings.
// @Summary Get active rooms
// @Tags Bill
// @Produce json
// @Success 200 {object} response.Data[[]dto.ActiveRoomResponse] "Active rooms"
// @Failure 500 {object} response.Error
// @Router /v1/bill/active-rooms [get]
// @Security BearerAuth
func (handler *Handler) GetActiveRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveRooms")
	defer scope.End()

	res, err := handler.service.GetActiveRooms(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active rooms retrieved")

	response.WithJSON(w, http.StatusOK, res)
}

// GetBill returns the itemized bill of the stay currently holding a room.
// @Summary Get bill for a room
// @Tags Bill
// @Produce json
// @Param room_number path string true "Room number"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bill/{room_number} [get]
// @Security BearerAuth
func (handler *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBill")
	defer scope.End()

	roomNumber := chi.URLParam(r, requestParamRoomNumber)

	res, err := handler.service.GetBill(ctx, roomNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", roomNumber).Msg("failed to get bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved for room " + roomNumber)

	response.WithJSON(w, http.StatusOK, res)
}

// Checkout settles the bill and closes the stay.
// @Summary Check out a room
// @Description Charges tax, applies the discount and marks the stay checked out. A stay can only be checked out once.
// @Tags Bill
// @Accept json
// @Produce json
// @Param room_number path string true "Room number"
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 200 {object} response.Data[dto.CheckoutResponse] "Checkout result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bill/checkout/{room_number} [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	roomNumber := chi.URLParam(r, requestParamRoomNumber)
	req := dto.CheckoutRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Checkout(ctx, roomNumber, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", roomNumber).Msg("failed to checkout")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room " + roomNumber + " checked out by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
