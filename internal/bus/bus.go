// Package bus implements the change notification bus: a process-wide,
// synchronous publish/subscribe fan-out that inventory writes use to announce
// changes to independently mounted UI surfaces. Notifications are not queued;
// a notification published with no subscribers is lost, and a single logical
// change may emit several overlapping notifications. Consumers are expected
// to be idempotent and to react by re-reading the store.
package bus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"khanabuddy/internal/models"
)

// Kind identifies a notification type. The set is closed.
type Kind string

const (
	// KindInventoryUpdated is emitted on every inventory write and carries
	// the full diff classification.
	KindInventoryUpdated Kind = "inventory-updated"
	// KindPricesUpdated is additionally emitted when any item's price changed.
	KindPricesUpdated Kind = "prices-updated"
	// KindQuantityUpdated is additionally emitted when any item's quantity
	// changed.
	KindQuantityUpdated Kind = "quantity-updated"
	// KindItemAdded is additionally emitted for pure create operations.
	KindItemAdded Kind = "item-added"
	// KindItemRemoved is additionally emitted for delete operations.
	KindItemRemoved Kind = "item-removed"
	// KindAnalyticsUpdated is emitted when a delivered order is archived.
	KindAnalyticsUpdated Kind = "analytics-updated"
)

// Kinds lists every notification kind, in emission-priority order.
var Kinds = []Kind{
	KindInventoryUpdated,
	KindPricesUpdated,
	KindQuantityUpdated,
	KindItemAdded,
	KindItemRemoved,
	KindAnalyticsUpdated,
}

// ItemChange describes one inventory item touched by a write.
type ItemChange struct {
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	PreviousQuantity int     `json:"previousQuantity"`
	PreviousPrice    float64 `json:"previousPrice"`
	QuantityChanged  bool    `json:"quantityChanged"`
	PriceChanged     bool    `json:"priceChanged"`
	IsNewItem        bool    `json:"isNewItem"`
}

// Notification is the structured payload delivered to subscribers.
type Notification struct {
	Kind                Kind                   `json:"kind"`
	NewlyAvailableItems []ItemChange           `json:"newlyAvailableItems"`
	UpdatedItems        []ItemChange           `json:"updatedItems"`
	RemovedItems        []string               `json:"removedItems"`
	AllItems            []models.InventoryItem `json:"allItems"`
	ChangeType          string                 `json:"changeType"`
	ChangedItem         *models.InventoryItem  `json:"changedItem,omitempty"`
	Timestamp           time.Time              `json:"timestamp"`
}

// Handler receives published notifications. Handlers run synchronously in
// the publisher's call; they must not block.
type Handler func(Notification)

var notificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "khanabuddy_notifications_published_total",
	Help: "Number of notifications published on the change bus, by kind.",
}, []string{"kind"})

// Bus is the process-wide notification fan-out.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind]map[int]Handler
}

// New creates an empty bus
func New() *Bus {
	return &Bus{subs: make(map[Kind]map[int]Handler)}
}

// Subscribe registers a handler for one notification kind and returns a
// cancel function that removes it. Safe to call from any goroutine.
func (b *Bus) Subscribe(kind Kind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[kind][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[kind], id)
	}
}

// Publish delivers n to every subscriber of n.Kind before returning. There
// is no ordering guarantee between subscribers and no delivery to
// subscribers registered afterwards.
func (b *Bus) Publish(n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[n.Kind]))
	for _, h := range b.subs[n.Kind] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	notificationsPublished.WithLabelValues(string(n.Kind)).Inc()
	for _, h := range handlers {
		h(n)
	}
}
