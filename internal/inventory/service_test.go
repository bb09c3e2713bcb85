package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"khanabuddy/internal/bus"
	"khanabuddy/internal/models"
	"khanabuddy/internal/storage"
)

// newTestService seeds a service over an in-memory store. A nil menu leaves
// the store empty.
func newTestService(t *testing.T, menu []models.InventoryItem) (*Service, *bus.Bus) {
	t.Helper()
	store := storage.NewMemoryStore()
	b := bus.New()
	svc := NewService(store, b, NewResolver(PolicyFirstMatch))
	if menu != nil {
		data, err := json.Marshal(menu)
		if err != nil {
			t.Fatalf("marshal menu: %v", err)
		}
		if err := store.Set(menuKey, string(data)); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return svc, b
}

func TestItemsMalformedBlobDegradesToEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set(menuKey, "{not json")
	svc := NewService(store, bus.New(), nil)

	assert.Empty(t, svc.Items())
}

func TestItemsAppliesDefaultMinStock(t *testing.T) {
	svc, _ := newTestService(t, []models.InventoryItem{
		{ItemID: "1", ItemName: "Fries", Price: 50, Quantity: 20},
	})

	items := svc.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, models.DefaultMinStock, items[0].MinStock)
}

func TestAddAssignsIDAndNotifies(t *testing.T) {
	svc, b := newTestService(t, nil)

	var kinds []bus.Kind
	for _, kind := range bus.Kinds {
		k := kind
		b.Subscribe(k, func(bus.Notification) { kinds = append(kinds, k) })
	}

	created, err := svc.Add(models.InventoryItem{ItemName: "Pasta", Price: 120, Quantity: 10})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ItemID)
	assert.Equal(t, models.DefaultMinStock, created.MinStock)

	assert.Contains(t, kinds, bus.KindInventoryUpdated)
	assert.Contains(t, kinds, bus.KindItemAdded)

	got, ok := svc.Get(created.ItemID)
	assert.True(t, ok)
	assert.Equal(t, "Pasta", got.ItemName)
}

func TestAddRejectsInvalidAndDuplicate(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Add(models.InventoryItem{ItemName: "  ", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.Add(models.InventoryItem{ItemName: "Coke", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.Add(models.InventoryItem{ItemID: "1", ItemName: "Coke", Price: 40, Quantity: 5})
	assert.NoError(t, err)
	_, err = svc.Add(models.InventoryItem{ItemID: "1", ItemName: "Coke Zero", Price: 40, Quantity: 5})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestUpdatePublishesPriceAndQuantityKinds(t *testing.T) {
	svc, b := newTestService(t, testMenu())

	var kinds []bus.Kind
	var last bus.Notification
	for _, kind := range bus.Kinds {
		k := kind
		b.Subscribe(k, func(n bus.Notification) {
			kinds = append(kinds, k)
			last = n
		})
	}

	err := svc.Update(models.InventoryItem{ItemID: "3", ItemName: "Fries", Price: 55, Quantity: 25, MinStock: 5})
	assert.NoError(t, err)

	assert.Contains(t, kinds, bus.KindInventoryUpdated)
	assert.Contains(t, kinds, bus.KindPricesUpdated)
	assert.Contains(t, kinds, bus.KindQuantityUpdated)
	assert.NotContains(t, kinds, bus.KindItemAdded)

	assert.Len(t, last.UpdatedItems, 1)
	assert.True(t, last.UpdatedItems[0].PriceChanged)
	assert.True(t, last.UpdatedItems[0].QuantityChanged)
	assert.Equal(t, 20, last.UpdatedItems[0].PreviousQuantity)
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newTestService(t, testMenu())
	err := svc.Update(models.InventoryItem{ItemID: "nope", ItemName: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetQuantityClampsNegative(t *testing.T) {
	svc, _ := newTestService(t, testMenu())

	assert.NoError(t, svc.SetQuantity("3", -4))
	item, ok := svc.Get("3")
	assert.True(t, ok)
	assert.Equal(t, 0, item.Quantity)
	assert.True(t, item.OutOfStock())
}

func TestRestockAnnouncesNewlyAvailable(t *testing.T) {
	menu := testMenu()
	menu[4].Quantity = 0 // Coke depleted
	svc, b := newTestService(t, menu)

	var got bus.Notification
	b.Subscribe(bus.KindInventoryUpdated, func(n bus.Notification) { got = n })

	assert.NoError(t, svc.SetQuantity("5", 30))

	assert.Len(t, got.NewlyAvailableItems, 1)
	assert.Equal(t, "Coke", got.NewlyAvailableItems[0].Name)
	assert.False(t, got.NewlyAvailableItems[0].IsNewItem)
}

func TestDeletePublishesRemoval(t *testing.T) {
	svc, b := newTestService(t, testMenu())

	var removedKind bool
	var got bus.Notification
	b.Subscribe(bus.KindItemRemoved, func(n bus.Notification) {
		removedKind = true
		got = n
	})

	assert.NoError(t, svc.Delete("5"))
	assert.True(t, removedKind)
	assert.Equal(t, []string{"Coke"}, got.RemovedItems)
	assert.Equal(t, ChangeDelete, got.ChangeType)

	_, ok := svc.Get("5")
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Delete("5"), ErrNotFound)
}

func TestStatusMap(t *testing.T) {
	menu := testMenu()
	menu[3].Quantity = 2 // Loaded Fries low
	menu[4].Quantity = 0 // Coke out
	svc, _ := newTestService(t, menu)

	status := svc.StatusMap()
	assert.Len(t, status, len(menu))
	assert.Equal(t, models.StatusAvailable, status["Fries"].Status)
	assert.Equal(t, models.StatusNeedRestock, status["Loaded Fries"].Status)
	assert.True(t, status["Loaded Fries"].IsLowStock)
	assert.Equal(t, models.StatusNotAvailable, status["Coke"].Status)
	assert.True(t, status["Coke"].IsOutOfStock)
}

func TestLowAndOutOfStockItems(t *testing.T) {
	menu := testMenu()
	menu[3].Quantity = 2
	menu[4].Quantity = 0
	svc, _ := newTestService(t, menu)

	low := svc.LowStockItems()
	assert.Len(t, low, 1)
	assert.Equal(t, "Loaded Fries", low[0].ItemName)

	out := svc.OutOfStockItems()
	assert.Len(t, out, 1)
	assert.Equal(t, "Coke", out[0].ItemName)
}

func TestSeedDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)

	assert.NoError(t, svc.SeedDefaults())
	assert.Len(t, svc.Items(), len(DefaultMenu()))

	// Seeding again must not duplicate or overwrite.
	assert.NoError(t, svc.SetQuantity("1", 3))
	assert.NoError(t, svc.SeedDefaults())
	item, _ := svc.Get("1")
	assert.Equal(t, 3, item.Quantity)
}
