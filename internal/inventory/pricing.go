package inventory

import (
	"strings"

	"khanabuddy/internal/models"
)

// PriceOrder produces the priced breakdown and total for a flattened list of
// order-line names (one entry per unit). Each name is resolved against the
// live inventory; lines group by resolved item with summed quantities,
// preserving the customer-facing name first seen for the group. Items that
// cannot be resolved or have no stock contribute nothing to the total but
// are still reported, flagged out-of-stock, so callers can surface them.
// Totals are recomputed in full on every call; prices may change between
// order placement and delivery.
func (s *Service) PriceOrder(names []string) models.Bill {
	items := s.Items()

	type group struct {
		display string
		qty     int
		item    models.InventoryItem
		found   bool
	}
	groups := make(map[string]*group)
	var order []string

	for _, raw := range names {
		display := strings.TrimSpace(raw)
		if display == "" {
			continue
		}
		item, found := s.resolver.Resolve(items, raw)
		key := strings.ToLower(display)
		if found {
			key = strings.ToLower(item.ItemName)
		}
		g, seen := groups[key]
		if !seen {
			g = &group{display: display, item: item, found: found}
			groups[key] = g
			order = append(order, key)
		}
		g.qty++
	}

	bill := models.Bill{ItemDetails: make([]models.BillLine, 0, len(order))}
	for _, key := range order {
		g := groups[key]
		line := models.BillLine{
			Name:         g.display,
			Quantity:     g.qty,
			IsOutOfStock: !g.found || g.item.OutOfStock(),
		}
		if g.found {
			line.Price = g.item.Price
			line.IsLowStock = g.item.LowStock()
			if g.item.Quantity > 0 {
				bill.Total += g.item.Price * float64(g.qty)
			}
		}
		bill.ItemDetails = append(bill.ItemDetails, line)
	}
	return bill
}
