package models

import "testing"

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     ItemStatus
	}{
		{"depleted", 0, 5, StatusNotAvailable},
		{"below threshold", 3, 5, StatusNeedRestock},
		{"at threshold", 5, 5, StatusAvailable},
		{"above threshold", 20, 5, StatusAvailable},
		{"zero threshold falls back to default", 3, 0, StatusNeedRestock},
		{"zero quantity wins over zero threshold", 0, 0, StatusNotAvailable},
		{"custom threshold", 9, 10, StatusNeedRestock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.quantity, tt.minStock); got != tt.want {
				t.Errorf("StatusFor(%d, %d) = %q, want %q", tt.quantity, tt.minStock, got, tt.want)
			}
		})
	}
}

func TestItemFlags(t *testing.T) {
	out := InventoryItem{ItemName: "Coke", Quantity: 0, MinStock: 10}
	if !out.OutOfStock() {
		t.Error("expected depleted item to be out of stock")
	}
	if out.LowStock() {
		t.Error("depleted item must not also be low stock")
	}

	low := InventoryItem{ItemName: "Fries", Quantity: 2, MinStock: 5}
	if low.OutOfStock() {
		t.Error("item with stock must not be out of stock")
	}
	if !low.LowStock() {
		t.Error("expected item below threshold to be low stock")
	}
}

func TestStatusInfoAppliesDefaultMinStock(t *testing.T) {
	info := InventoryItem{ItemName: "Pasta", Quantity: 3}.StatusInfo()
	if info.MinStock != DefaultMinStock {
		t.Errorf("MinStock = %d, want default %d", info.MinStock, DefaultMinStock)
	}
	if info.Status != StatusNeedRestock {
		t.Errorf("Status = %q, want %q", info.Status, StatusNeedRestock)
	}
	if !info.IsLowStock || info.IsOutOfStock {
		t.Errorf("flags = low:%v out:%v, want low:true out:false", info.IsLowStock, info.IsOutOfStock)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered} {
		if !ValidOrderStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if ValidOrderStatus("shipped") {
		t.Error("expected unknown status to be invalid")
	}
}
