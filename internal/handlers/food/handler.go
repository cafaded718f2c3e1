package food

import (
	"net/http"
	"resort/infras/otel"
	"resort/internal/domains/food/model"
	"resort/internal/domains/food/model/dto"
	"resort/internal/domains/food/service"
	"resort/shared"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/validator"
	"resort/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	items  service.Item
	orders service.Order
	otel   otel.Otel
}

func New(items service.Item, orders service.Order, otel otel.Otel) Handler {
	return Handler{
		items:  items,
		orders: orders,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/food-items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Patch("/{id}/toggle-availability", handler.ToggleAvailability)
		routerGroup.Delete("/{id}", handler.DeleteItem)
	})

	router.Route("/food-orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOrder)
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Patch("/{id}/cancel", handler.CancelOrder)
		routerGroup.Delete("/{id}", handler.DeleteOrder)
	})
}

// CreateItem adds a menu entry.
// @Summary Create a food item
// @Tags Food
// @Accept json
// @Produce json
// @Param request body dto.CreateItemRequest true "Create Food Item Request"
// @Success 201 {object} response.Message "Food item created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFoodItem")
	defer scope.End()

	req := dto.CreateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.items.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create food item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food item created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Food item created successfully")
}

// GetItems lists menu entries.
// @Summary Get all food items
// @Tags Food
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param available query bool false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetItemsResponse] "List of food items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items [get]
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableItem, model.FieldName, model.FieldPrice, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableItem,
		})
	}

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableItem,
		})
	}

	items, err := handler.items.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID returns one menu entry.
// @Summary Get a food item by ID
// @Tags Food
// @Produce json
// @Param id path string true "Food Item ID"
// @Success 200 {object} response.Data[dto.ItemResponse] "Food item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodItemByID")
	defer scope.End()

	item, err := handler.items.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food item")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food item retrieved successfully")

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateItem patches a menu entry.
// @Summary Update a food item
// @Tags Food
// @Accept json
// @Produce json
// @Param id path string true "Food Item ID"
// @Param request body dto.UpdateItemRequest true "Update Food Item Request"
// @Success 200 {object} response.Message "Food item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFoodItem")
	defer scope.End()

	req := dto.UpdateItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.items.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update food item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food item updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Food item updated successfully")
}

// ToggleAvailability flips a menu entry between orderable and not orderable.
// An optional body sets the flag explicitly.
// @Summary Toggle food item availability
// @Tags Food
// @Accept json
// @Produce json
// @Param id path string true "Food Item ID"
// @Param request body dto.SetAvailabilityRequest false "Explicit availability"
// @Success 200 {object} response.Data[dto.ItemResponse] "Updated food item"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items/{id}/toggle-availability [patch]
// @Security BearerAuth
func (handler *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFoodItemAvailability")
	defer scope.End()

	var available *bool

	if r.ContentLength > 0 {
		req := dto.SetAvailabilityRequest{}

		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}

		available = req.Available
	}

	item, err := handler.items.SetAvailability(ctx, chi.URLParam(r, constant.RequestParamID), available)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle food item availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food item availability updated")

	response.WithJSON(w, http.StatusOK, item)
}

// DeleteItem removes a menu entry that no order references.
// @Summary Delete a food item
// @Tags Food
// @Produce json
// @Param id path string true "Food Item ID"
// @Success 200 {object} response.Message "Food item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFoodItem")
	defer scope.End()

	if err := handler.items.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete food item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food item deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Food item deleted successfully")
}

// CreateOrder places a food order against a room. The amount is priced from the menu.
// @Summary Create a food order
// @Tags Food
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Create Food Order Request"
// @Success 201 {object} response.Data[dto.OrderResponse] "Created food order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-orders [post]
// @Security BearerAuth
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFoodOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.orders.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create food order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food order created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, order)
}

// GetOrders lists food orders.
// @Summary Get all food orders
// @Tags Food
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Param status query string false "Filter by status" Enums(active, cancelled)
// @Param billing_status query string false "Filter by billing status" Enums(unbilled, billed)
// @Success 200 {object} response.Data[dto.GetOrdersResponse] "List of food orders"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableOrder, model.FieldAmount, model.FieldStatus, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldRoomID, model.FieldStatus, model.FieldBillingStatus} {
		value := r.URL.Query().Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableOrder,
		})
	}

	orders, err := handler.orders.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food orders")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food orders retrieved successfully")

	response.WithJSON(w, http.StatusOK, orders)
}

// GetOrderByID returns one food order with its lines.
// @Summary Get a food order by ID
// @Tags Food
// @Produce json
// @Param id path string true "Food Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse] "Food order details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOrderByID")
	defer scope.End()

	order, err := handler.orders.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food order retrieved successfully")

	response.WithJSON(w, http.StatusOK, order)
}

// CancelOrder cancels an unbilled food order.
// @Summary Cancel a food order
// @Tags Food
// @Produce json
// @Param id path string true "Food Order ID"
// @Success 200 {object} response.Message "Food order cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-orders/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelFoodOrder")
	defer scope.End()

	if err := handler.orders.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel food order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food order cancelled by user " + user)

	response.WithMessage(w, http.StatusOK, "Food order cancelled successfully")
}

// DeleteOrder removes an unbilled food order and its lines.
// @Summary Delete a food order
// @Tags Food
// @Produce json
// @Param id path string true "Food Order ID"
// @Success 200 {object} response.Message "Food order deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/food-orders/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFoodOrder")
	defer scope.End()

	if err := handler.orders.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete food order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Food order deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Food order deleted successfully")
}
