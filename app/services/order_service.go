package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/repositories"
	"github.com/rohanwest/pancake/pkg/cache"
	"github.com/rohanwest/pancake/pkg/event"
	"github.com/rohanwest/pancake/pkg/metrics"
	"gorm.io/gorm"
)

const (
	ordersCacheKey = "orders:all"
	ordersCacheTTL = 30 * time.Second
)

// OrderService owns order creation and status transitions.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// Create records a new order in the pending state. The items payload is
// forwarded opaquely; nothing validates it beyond being JSON.
func (s *OrderService) Create(userID, userEmail string, items models.RawJSON, total float64) (models.Order, error) {
	order := models.Order{
		UserID:    userID,
		UserEmail: userEmail,
		Items:     items,
		Total:     total,
		Status:    models.OrderStatusPending,
	}
	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	cache.Forget(ordersCacheKey)
	event.Fire(EventOrderCreated, order)
	return order, nil
}

// SetStatus overwrites an order's status. No transition graph is enforced;
// any status may follow any other. The admin gate sits in the route
// middleware.
func (s *OrderService) SetStatus(id, status string) (models.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return models.Order{}, fmt.Errorf("find order: %w", err)
	}

	order.Status = status
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("update order: %w", err)
	}

	cache.Forget(ordersCacheKey)
	metrics.OrderStatusChanges.WithLabelValues(status).Inc()
	event.Fire(EventOrderStatusChanged, order)
	return order, nil
}

// List returns all orders in creation order, cached briefly; every mutation
// drops the cached copy.
func (s *OrderService) List() ([]models.Order, error) {
	var orders []models.Order
	if cache.Get(ordersCacheKey, &orders) {
		return orders, nil
	}

	orders, err := s.orders.All()
	if err != nil {
		return nil, err
	}

	cache.Set(ordersCacheKey, orders, ordersCacheTTL)
	return orders, nil
}
