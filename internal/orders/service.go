// Package orders manages the active and archived order collections. Active
// orders live under one blob key and keep recomputing their totals from live
// inventory; delivered orders move to a separate archive with their total
// frozen at delivery time, since archived orders represent historical fact.
package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"khanabuddy/internal/bus"
	"khanabuddy/internal/inventory"
	"khanabuddy/internal/models"
	"khanabuddy/internal/storage"
)

const (
	activeKey    = "activeOrders"
	deliveredKey = "deliveredOrders"
)

var (
	// ErrNotFound is returned when an order id does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrEmptyOrder is returned when an order is created with no items.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidStatus is returned for unknown or disallowed transitions.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrNoStockChange is returned when delivery decremented nothing, so a
	// false delivered confirmation is never reported.
	ErrNoStockChange = errors.New("delivery changed no stock")
)

// UnavailableError rejects a delivery and lists the offending item names.
// The inventory is left untouched.
type UnavailableError struct {
	Items []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("items unavailable: %s", strings.Join(e.Items, ", "))
}

var ordersDelivered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "khanabuddy_orders_delivered_total",
	Help: "Number of orders delivered and archived.",
})

// Service owns the order collections.
type Service struct {
	store storage.Store
	inv   *inventory.Service
	bus   *bus.Bus
}

// NewService creates the order service
func NewService(store storage.Store, inv *inventory.Service, b *bus.Bus) *Service {
	return &Service{store: store, inv: inv, bus: b}
}

func (s *Service) read(key string) []models.Order {
	raw, ok := s.store.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		log.Printf("orders: malformed %s blob, treating as empty: %v", key, err)
		return nil
	}
	return orders
}

func (s *Service) write(key string, orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.store.Set(key, string(data))
}

// Create records a new order. Orders are created on payment confirmation,
// after the chat flow has collected the flattened item list.
func (s *Service) Create(customerName, phone string, items []string) (models.Order, error) {
	var cleaned []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			cleaned = append(cleaned, strings.TrimSpace(it))
		}
	}
	if len(cleaned) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	order := models.Order{
		ID:           "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
		CustomerName: customerName,
		Phone:        phone,
		Items:        cleaned,
		OrderTime:    time.Now(),
		Status:       models.OrderStatusPreparing,
	}
	order.Total = s.inv.PriceOrder(order.Items).Total

	active := append(s.read(activeKey), order)
	if err := s.write(activeKey, active); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Active returns the active orders with totals recomputed from current
// inventory. Totals are never frozen at cart-add time.
func (s *Service) Active() []models.Order {
	orders := s.read(activeKey)
	for i := range orders {
		orders[i].Total = s.inv.PriceOrder(orders[i].Items).Total
	}
	return orders
}

// Delivered returns the archived orders with their frozen totals
func (s *Service) Delivered() []models.Order {
	return s.read(deliveredKey)
}

// Get returns one active order by id, with its total recomputed
func (s *Service) Get(id string) (models.Order, bool) {
	for _, o := range s.Active() {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// SetStatus moves an active order between preparing and ready. Delivery
// must go through Deliver so the stock precondition is enforced.
func (s *Service) SetStatus(id string, status models.OrderStatus) error {
	if status != models.OrderStatusPreparing && status != models.OrderStatusReady {
		return ErrInvalidStatus
	}
	orders := s.read(activeKey)
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			return s.write(activeKey, orders)
		}
	}
	return ErrNotFound
}

// Deliver completes an order: it re-checks availability, decrements stock
// one unit per order line, freezes the total at the current prices and moves
// the order to the archive. On an UnavailableError the inventory and the
// order are left untouched.
func (s *Service) Deliver(id string) (models.Order, error) {
	orders := s.read(activeKey)
	idx := -1
	for i := range orders {
		if orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, ErrNotFound
	}
	order := orders[idx]

	if unavailable := s.inv.Unavailable(order.Items); len(unavailable) > 0 {
		return models.Order{}, &UnavailableError{Items: unavailable}
	}

	// Freeze the bill before stock moves; the decrement does not change
	// prices but the archive should reflect what the customer was shown.
	bill := s.inv.PriceOrder(order.Items)

	changed, _ := s.inv.ReduceForDelivery(order.Items)
	if !changed {
		return models.Order{}, ErrNoStockChange
	}

	now := time.Now()
	order.Status = models.OrderStatusDelivered
	order.DeliveredTime = &now
	order.Total = bill.Total

	orders = append(orders[:idx], orders[idx+1:]...)
	if err := s.write(activeKey, orders); err != nil {
		return models.Order{}, err
	}
	delivered := append(s.read(deliveredKey), order)
	if err := s.write(deliveredKey, delivered); err != nil {
		return models.Order{}, err
	}

	ordersDelivered.Inc()
	s.bus.Publish(bus.Notification{Kind: bus.KindAnalyticsUpdated, ChangeType: "order_delivered"})
	return order, nil
}
