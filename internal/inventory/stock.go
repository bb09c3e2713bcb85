package inventory

// QuantityChange records one item's stock movement during delivery.
type QuantityChange struct {
	Name         string `json:"name"`
	ItemID       string `json:"item_id"`
	FromQuantity int    `json:"fromQuantity"`
	ToQuantity   int    `json:"toQuantity"`
}

// ReduceForDelivery decrements stock by one unit per order-line entry,
// clamped at zero, and persists the result through the normal write path so
// subscribers are notified. The boolean is false when nothing changed (every
// referenced item was already depleted or unresolved); callers must treat
// that as a failed delivery, not a silent success.
func (s *Service) ReduceForDelivery(names []string) (bool, []QuantityChange) {
	items := s.Items()
	original := make(map[string]int, len(items))
	for _, it := range items {
		original[it.ItemID] = it.Quantity
	}

	changed := false
	for _, raw := range names {
		target, found := s.resolver.Resolve(items, raw)
		if !found {
			continue
		}
		for i := range items {
			if items[i].ItemID == target.ItemID {
				if items[i].Quantity > 0 {
					items[i].Quantity--
					changed = true
				}
				break
			}
		}
	}
	if !changed {
		return false, nil
	}

	var changes []QuantityChange
	for _, it := range items {
		if from := original[it.ItemID]; from != it.Quantity {
			changes = append(changes, QuantityChange{
				Name:         it.ItemName,
				ItemID:       it.ItemID,
				FromQuantity: from,
				ToQuantity:   it.Quantity,
			})
		}
	}

	if err := s.save(items, ChangeDelivery, nil); err != nil {
		return false, nil
	}
	return true, changes
}
