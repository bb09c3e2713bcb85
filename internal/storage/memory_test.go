package storage

import "testing"

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get("menu"); ok {
		t.Error("expected miss on empty store")
	}

	if err := s.Set("menu", `[{"item_id":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok := s.Get("menu")
	if !ok || v != `[{"item_id":"1"}]` {
		t.Errorf("Get = %q, %v", v, ok)
	}

	// Last write wins.
	if err := s.Set("menu", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := s.Get("menu"); v != "[]" {
		t.Errorf("Get after overwrite = %q, want []", v)
	}

	if err := s.Remove("menu"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := s.Get("menu"); ok {
		t.Error("expected miss after Remove")
	}
}
