package bus

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()

	var got []Notification
	b.Subscribe(KindInventoryUpdated, func(n Notification) {
		got = append(got, n)
	})

	b.Publish(Notification{Kind: KindInventoryUpdated, ChangeType: "update"})

	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].ChangeType != "update" {
		t.Errorf("ChangeType = %q, want update", got[0].ChangeType)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected Publish to stamp the notification")
	}
}

func TestPublishOnlyMatchingKind(t *testing.T) {
	b := New()

	inventory := 0
	prices := 0
	b.Subscribe(KindInventoryUpdated, func(Notification) { inventory++ })
	b.Subscribe(KindPricesUpdated, func(Notification) { prices++ })

	b.Publish(Notification{Kind: KindInventoryUpdated})
	b.Publish(Notification{Kind: KindInventoryUpdated})
	b.Publish(Notification{Kind: KindPricesUpdated})

	if inventory != 2 {
		t.Errorf("inventory subscriber saw %d notifications, want 2", inventory)
	}
	if prices != 1 {
		t.Errorf("prices subscriber saw %d notifications, want 1", prices)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	calls := 0
	cancel := b.Subscribe(KindQuantityUpdated, func(Notification) { calls++ })

	b.Publish(Notification{Kind: KindQuantityUpdated})
	cancel()
	b.Publish(Notification{Kind: KindQuantityUpdated})

	if calls != 1 {
		t.Errorf("subscriber saw %d notifications after cancel, want 1", calls)
	}
}

func TestPublishWithoutSubscribersIsLost(t *testing.T) {
	b := New()

	// Must not panic or queue; a later subscriber sees nothing.
	b.Publish(Notification{Kind: KindItemRemoved})

	calls := 0
	b.Subscribe(KindItemRemoved, func(Notification) { calls++ })
	if calls != 0 {
		t.Errorf("late subscriber saw %d replayed notifications, want 0", calls)
	}
}

func TestPublishPreservesExplicitTimestamp(t *testing.T) {
	b := New()

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var got Notification
	b.Subscribe(KindAnalyticsUpdated, func(n Notification) { got = n })
	b.Publish(Notification{Kind: KindAnalyticsUpdated, Timestamp: stamp})

	if !got.Timestamp.Equal(stamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, stamp)
	}
}
