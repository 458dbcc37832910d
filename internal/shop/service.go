package shop

import (
	"context"
	"errors"
	"time"

	"fittrack/pkg/cache"
	"fittrack/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrNotOwner       = errors.New("order does not belong to user")
	ErrNotCancellable = errors.New("order is not in a cancellable state")
)

const catalogCacheKey = "fittrack:shop:catalog"

// ActivityPublisher pushes order events onto the activity pipeline.
type ActivityPublisher interface {
	PublishOrderPlaced(ctx context.Context, userID, orderID uuid.UUID, totalCents int64) error
}

type Service interface {
	SetActivityPublisher(publisher ActivityPublisher)
	ListProducts(ctx context.Context) ([]ProductResponse, error)
	GetProduct(ctx context.Context, productID string) (*ProductResponse, error)
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *PlaceOrderRequest) (*OrderResponse, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error)
	GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderResponse, error)
	CancelOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderResponse, error)
}

type service struct {
	repo       Repository
	reserver   *StockReserver
	cache      cache.Service
	publisher  ActivityPublisher
	logger     *logger.Logger
	catalogTTL time.Duration
}

func NewService(repo Repository, reserver *StockReserver, cacheService cache.Service, log *logger.Logger, catalogTTL time.Duration) Service {
	return &service{
		repo:       repo,
		reserver:   reserver,
		cache:      cacheService,
		logger:     log,
		catalogTTL: catalogTTL,
	}
}

func (s *service) SetActivityPublisher(publisher ActivityPublisher) {
	s.publisher = publisher
}

func (s *service) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	if s.cache == nil {
		return s.loadCatalog(ctx)
	}

	var products []ProductResponse
	err := s.cache.GetOrSet(ctx, catalogCacheKey, s.catalogTTL, func() (interface{}, error) {
		return s.loadCatalog(ctx)
	}, &products)
	return products, err
}

func (s *service) loadCatalog(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *products[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.ToResponse(), nil
}

func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req *PlaceOrderRequest) (*OrderResponse, error) {
	products, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Reserve in Redis first so concurrent orders for the last units are
	// serialized by the Lua script instead of the database.
	if err := s.reserve(ctx, req.Items, products); err != nil {
		return nil, err
	}

	order := &Order{
		UserID: userID,
		Status: OrderStatusPending,
	}
	for _, item := range req.Items {
		product := products[item.ProductID]
		order.Items = append(order.Items, OrderItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		order.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	if err := s.repo.CreateOrderWithStock(ctx, order); err != nil {
		// Return the reservation so the units stay sellable
		if restoreErr := s.reserver.Restore(ctx, order.Items); restoreErr != nil {
			s.logger.ErrorWithContext(ctx, "Failed to restore stock after order failure", restoreErr, nil)
		}
		return nil, err
	}
	order.Status = OrderStatusConfirmed

	s.invalidateCatalog(ctx)
	s.logger.LogOrderPlaced(ctx, order.ID.String(), userID.String())

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, userID, order.ID, order.TotalCents); err != nil {
			s.logger.ErrorWithContext(ctx, "Failed to publish order placed event", err, map[string]interface{}{
				"order_id": order.ID.String(),
			})
		}
	}

	return order.ToResponse(), nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *orders[i].ToResponse())
	}
	return responses, nil
}

func (s *service) GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderResponse, error) {
	order, err := s.getOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return order.ToResponse(), nil
}

func (s *service) CancelOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderResponse, error) {
	order, err := s.getOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, ErrNotCancellable
	}

	if err := s.repo.CancelOrderWithStock(ctx, order); err != nil {
		return nil, err
	}
	order.Status = OrderStatusCancelled

	if err := s.reserver.Restore(ctx, order.Items); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to restore stock counters on cancellation", err, map[string]interface{}{
			"order_id": order.ID.String(),
		})
	}

	s.invalidateCatalog(ctx)

	return order.ToResponse(), nil
}

func (s *service) getOwnedOrder(ctx context.Context, userID uuid.UUID, orderID string) (*Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	return order, nil
}

// resolveProducts loads and validates every product in the order, rejecting
// unknown, inactive, or duplicated entries.
func (s *service) resolveProducts(ctx context.Context, items []OrderItemRequest) (map[uuid.UUID]*Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			return nil, errors.New("duplicate product in order")
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.Active {
			return nil, ErrProductNotFound
		}
	}
	return byID, nil
}

func (s *service) reserve(ctx context.Context, items []OrderItemRequest, products map[uuid.UUID]*Product) error {
	err := s.reserver.Reserve(ctx, items)
	if errors.Is(err, ErrStockNotSeeded) {
		// First order for some product since startup, seed counters from
		// the database and retry once.
		for _, item := range items {
			if seedErr := s.reserver.SeedStock(ctx, item.ProductID, products[item.ProductID].Stock); seedErr != nil {
				return seedErr
			}
		}
		err = s.reserver.Reserve(ctx, items)
	}
	return err
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.ErrorWithContext(ctx, "Failed to invalidate catalog cache", err, nil)
	}
}
