package models

// DefaultMinStock is the restock threshold applied when an item was saved
// without one.
const DefaultMinStock = 5

// InventoryItem represents a menu item in the persisted inventory collection
type InventoryItem struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	MinStock int     `json:"min_stock"`
}

// ItemStatus represents the derived availability of an inventory item
type ItemStatus string

const (
	StatusAvailable    ItemStatus = "Available"
	StatusNeedRestock  ItemStatus = "Need to Restock"
	StatusNotAvailable ItemStatus = "Not Available"
)

// StatusFor derives the availability status from a quantity and restock
// threshold. Pure function over non-negative inputs.
func StatusFor(quantity, minStock int) ItemStatus {
	if minStock <= 0 {
		minStock = DefaultMinStock
	}
	switch {
	case quantity == 0:
		return StatusNotAvailable
	case quantity < minStock:
		return StatusNeedRestock
	default:
		return StatusAvailable
	}
}

// EffectiveMinStock returns the restock threshold, falling back to the
// default when the stored value is unset.
func (it InventoryItem) EffectiveMinStock() int {
	if it.MinStock <= 0 {
		return DefaultMinStock
	}
	return it.MinStock
}

// Status returns the derived availability of the item
func (it InventoryItem) Status() ItemStatus {
	return StatusFor(it.Quantity, it.MinStock)
}

// OutOfStock reports whether the item has no stock left
func (it InventoryItem) OutOfStock() bool {
	return it.Quantity == 0
}

// LowStock reports whether the item is below its restock threshold but not
// yet depleted
func (it InventoryItem) LowStock() bool {
	return it.Quantity > 0 && it.Quantity < it.EffectiveMinStock()
}

// ItemStatusInfo is the read model consumed by menu and dashboard renderers,
// keyed by display name in the status map query.
type ItemStatusInfo struct {
	Quantity     int        `json:"quantity"`
	Price        float64    `json:"price"`
	MinStock     int        `json:"min_stock"`
	Status       ItemStatus `json:"status"`
	IsOutOfStock bool       `json:"isOutOfStock"`
	IsLowStock   bool       `json:"isLowStock"`
}

// StatusInfo builds the read model for the item
func (it InventoryItem) StatusInfo() ItemStatusInfo {
	return ItemStatusInfo{
		Quantity:     it.Quantity,
		Price:        it.Price,
		MinStock:     it.EffectiveMinStock(),
		Status:       it.Status(),
		IsOutOfStock: it.OutOfStock(),
		IsLowStock:   it.LowStock(),
	}
}
