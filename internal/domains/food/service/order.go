package service

//go:generate go run go.uber.org/mock/mockgen -source=./order.go -destination=./mocks/order_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/internal/domains/food/model"
	"resort/internal/domains/food/model/dto"
	"resort/internal/domains/food/repository"
	roomModel "resort/internal/domains/room/model"
	roomRepository "resort/internal/domains/room/repository"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
	gRepo "resort/shared/repository"
	"resort/shared/timezone"
	"resort/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Order list and count keys are also dropped by checkout when lines get billed.
const (
	CacheGetOrder    = "food_order:get"
	CacheGetAllOrder = "food_order:get_all"
	CacheCountOrder  = "food_order:count"
)

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	orders repository.Order
	lines  repository.OrderItem
	items  repository.Item
	rooms  roomRepository.Room
	tx     transaction.Transaction
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func NewOrder(
	orders repository.Order,
	lines repository.OrderItem,
	items repository.Item,
	rooms roomRepository.Room,
	tx transaction.Transaction,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Order {
	return &orderService{
		orders: orders,
		lines:  lines,
		items:  items,
		rooms:  rooms,
		tx:     tx,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".food.CreateOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for food order")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	menu, err := s.menu(ctx, req.FoodItemIDs())
	if err != nil {
		return res, err
	}

	order, lines := req.ToModels(user, menu)

	err = s.tx.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.orders.InsertTx(ctx, tx, order); err != nil {
			return err
		}

		return s.lines.InsertBulkTx(ctx, tx, lines)
	})
	if err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.NotFound("assigned employee not found")
		}

		log.Error().Err(err).Msg("failed to create food order")

		return res, fmt.Errorf("failed to create food order: %w", err)
	}

	order.RoomNumber = room.Number

	details := make([]model.OrderItemDetail, len(lines))
	for i, line := range lines {
		details[i] = model.OrderItemDetail{
			OrderItem: line,
			ItemName:  menu[line.FoodItemID].Name,
			ItemPrice: menu[line.FoodItemID].Price,
		}
	}

	res.FromModel(order, details)

	s.invalidate(ctx, order.ID)

	return res, nil
}

// menu loads the referenced items keyed by id. Every id must exist and be orderable.
func (s *orderService) menu(ctx context.Context, ids []string) (map[string]model.Item, error) {
	items, err := s.items.GetAll(ctx, gDto.QueryParams{}, repository.FilterItemsByIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to get food items for order")

		return nil, fmt.Errorf("failed to get food items: %w", err)
	}

	menu := make(map[string]model.Item, len(items))
	for _, item := range items {
		menu[item.ID] = item
	}

	for _, id := range ids {
		item, ok := menu[id]
		if !ok {
			return nil, failure.NotFound(fmt.Sprintf("food item %s not found", id))
		}

		if !item.Available {
			return nil, failure.BadRequestFromString(fmt.Sprintf("food item %s is not available", item.Name))
		}
	}

	return menu, nil
}

func (s *orderService) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".food.GetAllOrders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for food orders")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	orders, err := s.orders.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get food orders")

		return res, fmt.Errorf("failed to get food orders: %w", err)
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	lines, err := s.linesOf(ctx, ids)
	if err != nil {
		return res, err
	}

	res.FromModels(orders, lines, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save food orders to cache")
		}
	}()

	return res, nil
}

func (s *orderService) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.orders.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count food orders")

		return total, fmt.Errorf("failed to count food orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save food order count to cache")
		}
	}()

	return total, nil
}

// linesOf groups the joined order lines by order id.
func (s *orderService) linesOf(ctx context.Context, orderIDs []string) (map[string][]model.OrderItemDetail, error) {
	grouped := make(map[string][]model.OrderItemDetail, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	lines, err := s.lines.GetAll(ctx, gDto.QueryParams{}, repository.FilterLinesByOrderIDs(orderIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get food order lines")

		return nil, fmt.Errorf("failed to get food order lines: %w", err)
	}

	for _, line := range lines {
		grouped[line.OrderID] = append(grouped[line.OrderID], line)
	}

	return grouped, nil
}

func (s *orderService) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".food.GetOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetOrder, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for food order")

		return res, nil
	}

	order, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	lines, err := s.linesOf(ctx, []string{order.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(order, lines[order.ID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save food order to cache")
		}
	}()

	return res, nil
}

func (s *orderService) get(ctx context.Context, id string) (model.Order, error) {
	order, err := s.orders.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableOrder))
	if err != nil {
		log.Error().Err(err).Msg("failed to get food order")

		return order, fmt.Errorf("failed to get food order: %w", err)
	}

	if order.ID == constant.Empty {
		return order, failure.NotFound("food order not found")
	}

	return order, nil
}

// unbilled returns the order when it can still be changed.
func (s *orderService) unbilled(ctx context.Context, id string) (model.Order, error) {
	order, err := s.get(ctx, id)
	if err != nil {
		return order, err
	}

	if order.BillingStatus == constant.BillingStatusBilled {
		return order, failure.InvalidState("food order has already been billed")
	}

	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".food.CancelOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, err := s.unbilled(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == model.OrderStatusCancelled {
		return nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	fields := map[string]any{
		model.FieldStatus:        model.OrderStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.orders.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableOrder)); err != nil {
		log.Error().Err(err).Msg("failed to cancel food order")

		return fmt.Errorf("failed to cancel food order: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *orderService) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".food.DeleteOrder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.unbilled(ctx, id); err != nil {
		return err
	}

	if err = s.orders.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableOrder)); err != nil {
		log.Error().Err(err).Msg("failed to delete food order")

		return fmt.Errorf("failed to delete food order: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *orderService) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete food order cache")
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, CacheCountOrder)
	}()
}
