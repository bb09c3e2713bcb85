// Package inventory implements the inventory store and the order
// reconciliation rules built on top of it: name resolution, live pricing,
// delivery-time stock decrements and availability checks. Every mutating
// operation follows the same path: read the collection, compute the new one,
// persist it in a single write, then diff old against new and notify the
// change bus.
package inventory

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"khanabuddy/internal/bus"
	"khanabuddy/internal/models"
	"khanabuddy/internal/storage"
)

// menuKey is the well-known blob key for the inventory collection.
const menuKey = "menu"

// Change types recorded on inventory writes.
const (
	ChangeAdd      = "add"
	ChangeUpdate   = "update"
	ChangeDelete   = "delete"
	ChangeDelivery = "order_delivery"
)

var (
	// ErrNotFound is returned when an item id does not exist.
	ErrNotFound = errors.New("inventory item not found")
	// ErrInvalidItem is returned when an item fails basic validation.
	ErrInvalidItem = errors.New("invalid inventory item")
)

// Service owns the persisted inventory collection.
type Service struct {
	store    storage.Store
	bus      *bus.Bus
	resolver *Resolver
}

// NewService creates the inventory service
func NewService(store storage.Store, b *bus.Bus, resolver *Resolver) *Service {
	if resolver == nil {
		resolver = NewResolver(PolicyFirstMatch)
	}
	return &Service{store: store, bus: b, resolver: resolver}
}

// Resolver exposes the name resolver bound to this service
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Items returns the current inventory collection. A missing or malformed
// blob degrades to an empty collection; there is no durable backing store to
// retry against.
func (s *Service) Items() []models.InventoryItem {
	raw, ok := s.store.Get(menuKey)
	if !ok || raw == "" {
		return nil
	}
	var items []models.InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("inventory: malformed menu blob, treating as empty: %v", err)
		return nil
	}
	for i := range items {
		if items[i].MinStock <= 0 {
			items[i].MinStock = models.DefaultMinStock
		}
	}
	return items
}

// Get returns the item with the given id
func (s *Service) Get(id string) (models.InventoryItem, bool) {
	for _, it := range s.Items() {
		if it.ItemID == id {
			return it, true
		}
	}
	return models.InventoryItem{}, false
}

func validate(item models.InventoryItem) error {
	if strings.TrimSpace(item.ItemName) == "" {
		return ErrInvalidItem
	}
	if item.Price < 0 || item.Quantity < 0 || item.MinStock < 0 {
		return ErrInvalidItem
	}
	return nil
}

// Add creates a new inventory item, assigning an id when none is given
func (s *Service) Add(item models.InventoryItem) (models.InventoryItem, error) {
	if err := validate(item); err != nil {
		return models.InventoryItem{}, err
	}
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	if item.MinStock == 0 {
		item.MinStock = models.DefaultMinStock
	}
	items := s.Items()
	for _, existing := range items {
		if existing.ItemID == item.ItemID {
			return models.InventoryItem{}, ErrInvalidItem
		}
	}
	items = append(items, item)
	if err := s.save(items, ChangeAdd, &item); err != nil {
		return models.InventoryItem{}, err
	}
	return item, nil
}

// Update replaces the stored item with the same id
func (s *Service) Update(item models.InventoryItem) error {
	if err := validate(item); err != nil {
		return err
	}
	items := s.Items()
	for i := range items {
		if items[i].ItemID == item.ItemID {
			items[i] = item
			return s.save(items, ChangeUpdate, &item)
		}
	}
	return ErrNotFound
}

// SetQuantity updates only the stock count of one item. Negative quantities
// clamp to zero.
func (s *Service) SetQuantity(id string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	items := s.Items()
	for i := range items {
		if items[i].ItemID == id {
			items[i].Quantity = quantity
			return s.save(items, ChangeUpdate, &items[i])
		}
	}
	return ErrNotFound
}

// Delete removes the item with the given id
func (s *Service) Delete(id string) error {
	items := s.Items()
	for i := range items {
		if items[i].ItemID == id {
			removed := items[i]
			items = append(items[:i], items[i+1:]...)
			return s.save(items, ChangeDelete, &removed)
		}
	}
	return ErrNotFound
}

// StatusMap returns the derived-status view consumed by the menu and
// dashboard renderers, keyed by item name.
func (s *Service) StatusMap() map[string]models.ItemStatusInfo {
	out := make(map[string]models.ItemStatusInfo)
	for _, it := range s.Items() {
		out[it.ItemName] = it.StatusInfo()
	}
	return out
}

// LowStockItems returns items below their restock threshold but not depleted
func (s *Service) LowStockItems() []models.InventoryItem {
	var low []models.InventoryItem
	for _, it := range s.Items() {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low
}

// OutOfStockItems returns items with no stock left
func (s *Service) OutOfStockItems() []models.InventoryItem {
	var out []models.InventoryItem
	for _, it := range s.Items() {
		if it.OutOfStock() {
			out = append(out, it)
		}
	}
	return out
}

// save persists the new collection in a single write, then diffs it against
// the previous one and publishes the matching notifications. A single
// logical change may emit several overlapping notifications; consumers are
// idempotent by contract.
func (s *Service) save(items []models.InventoryItem, changeType string, changed *models.InventoryItem) error {
	previous := s.Items()

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(menuKey, string(data)); err != nil {
		return err
	}

	newlyAvailable, updated, removed := diffItems(previous, items)

	base := bus.Notification{
		NewlyAvailableItems: newlyAvailable,
		UpdatedItems:        updated,
		RemovedItems:        removed,
		AllItems:            items,
		ChangeType:          changeType,
		ChangedItem:         changed,
	}

	publish := func(kind bus.Kind) {
		n := base
		n.Kind = kind
		s.bus.Publish(n)
	}

	publish(bus.KindInventoryUpdated)

	priceChanged := false
	quantityChanged := false
	for _, u := range updated {
		priceChanged = priceChanged || u.PriceChanged
		quantityChanged = quantityChanged || u.QuantityChanged
	}
	if priceChanged {
		publish(bus.KindPricesUpdated)
	}
	if quantityChanged {
		publish(bus.KindQuantityUpdated)
	}
	if changeType == ChangeAdd {
		publish(bus.KindItemAdded)
	}
	if changeType == ChangeDelete || len(removed) > 0 {
		publish(bus.KindItemRemoved)
	}
	return nil
}
