package inventory

import (
	"encoding/json"
	"log"

	"khanabuddy/internal/models"
)

// DefaultMenu returns the stock menu used to bootstrap an empty store.
func DefaultMenu() []models.InventoryItem {
	return []models.InventoryItem{
		{ItemID: "1", ItemName: "Margherita Pizza", Price: 150.00, Quantity: 25, MinStock: 5},
		{ItemID: "2", ItemName: "Chicken Burger", Price: 80.00, Quantity: 15, MinStock: 5},
		{ItemID: "3", ItemName: "BBQ Burger", Price: 90.00, Quantity: 12, MinStock: 5},
		{ItemID: "4", ItemName: "Fries", Price: 50.00, Quantity: 20, MinStock: 5},
		{ItemID: "5", ItemName: "Loaded Fries", Price: 70.00, Quantity: 10, MinStock: 5},
		{ItemID: "6", ItemName: "Onion Rings", Price: 45.00, Quantity: 18, MinStock: 5},
		{ItemID: "7", ItemName: "Garlic Bread", Price: 60.00, Quantity: 12, MinStock: 5},
		{ItemID: "8", ItemName: "Coke", Price: 40.00, Quantity: 30, MinStock: 10},
		{ItemID: "9", ItemName: "Milkshake", Price: 80.00, Quantity: 15, MinStock: 5},
		{ItemID: "10", ItemName: "Smoothie", Price: 90.00, Quantity: 12, MinStock: 5},
		{ItemID: "11", ItemName: "Veggie Wrap", Price: 85.00, Quantity: 8, MinStock: 5},
		{ItemID: "12", ItemName: "Fish & Chips", Price: 95.00, Quantity: 14, MinStock: 5},
	}
}

// SeedDefaults writes the default menu when the inventory collection is
// empty or missing. It writes the blob directly: seeding happens at startup,
// before any subscriber is mounted, so notifications would be lost anyway.
func (s *Service) SeedDefaults() error {
	if len(s.Items()) > 0 {
		return nil
	}
	data, err := json.Marshal(DefaultMenu())
	if err != nil {
		return err
	}
	if err := s.store.Set(menuKey, string(data)); err != nil {
		return err
	}
	log.Printf("inventory: seeded default menu with %d items", len(DefaultMenu()))
	return nil
}
