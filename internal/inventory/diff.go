package inventory

import (
	"khanabuddy/internal/bus"
	"khanabuddy/internal/models"
)

// diffItems classifies an inventory write by comparing the previous and new
// collections item by item. It reports items that came back in stock or were
// newly created, items whose quantity or price changed, and the names of
// removed items.
func diffItems(previous, current []models.InventoryItem) (newlyAvailable, updated []bus.ItemChange, removed []string) {
	prevByID := make(map[string]models.InventoryItem, len(previous))
	for _, p := range previous {
		prevByID[p.ItemID] = p
	}

	for _, cur := range current {
		prev, existed := prevByID[cur.ItemID]
		if !existed {
			newlyAvailable = append(newlyAvailable, bus.ItemChange{
				Name:      cur.ItemName,
				Quantity:  cur.Quantity,
				Price:     cur.Price,
				IsNewItem: true,
			})
			continue
		}

		if prev.Quantity == 0 && cur.Quantity > 0 {
			newlyAvailable = append(newlyAvailable, bus.ItemChange{
				Name:             cur.ItemName,
				Quantity:         cur.Quantity,
				Price:            cur.Price,
				PreviousQuantity: prev.Quantity,
			})
		}

		quantityChanged := prev.Quantity != cur.Quantity
		priceChanged := prev.Price != cur.Price
		if quantityChanged || priceChanged {
			updated = append(updated, bus.ItemChange{
				Name:             cur.ItemName,
				Quantity:         cur.Quantity,
				Price:            cur.Price,
				PreviousQuantity: prev.Quantity,
				PreviousPrice:    prev.Price,
				QuantityChanged:  quantityChanged,
				PriceChanged:     priceChanged,
			})
		}
	}

	currentIDs := make(map[string]bool, len(current))
	for _, c := range current {
		currentIDs[c.ItemID] = true
	}
	for _, p := range previous {
		if !currentIDs[p.ItemID] {
			removed = append(removed, p.ItemName)
		}
	}
	return newlyAvailable, updated, removed
}
