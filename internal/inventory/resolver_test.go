package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"khanabuddy/internal/models"
)

func testMenu() []models.InventoryItem {
	return []models.InventoryItem{
		{ItemID: "1", ItemName: "Chicken Burger", Price: 80, Quantity: 15, MinStock: 5},
		{ItemID: "2", ItemName: "BBQ Burger", Price: 90, Quantity: 12, MinStock: 5},
		{ItemID: "3", ItemName: "Fries", Price: 50, Quantity: 20, MinStock: 5},
		{ItemID: "4", ItemName: "Loaded Fries", Price: 70, Quantity: 10, MinStock: 5},
		{ItemID: "5", ItemName: "Coke", Price: 40, Quantity: 30, MinStock: 10},
	}
}

func TestResolveExactMatch(t *testing.T) {
	r := NewResolver(PolicyFirstMatch)
	items := testMenu()

	item, found := r.Resolve(items, "Chicken Burger")
	assert.True(t, found)
	assert.Equal(t, "1", item.ItemID)

	// Case and surrounding whitespace must not matter.
	item, found = r.Resolve(items, "  chicken BURGER ")
	assert.True(t, found)
	assert.Equal(t, "1", item.ItemID)
}

func TestResolveExactBeatsSynonym(t *testing.T) {
	r := NewResolver(PolicyFirstMatch)
	items := testMenu()

	// "fries" is both an item name and a synonym term; the exact match wins.
	item, found := r.Resolve(items, "fries")
	assert.True(t, found)
	assert.Equal(t, "Fries", item.ItemName)
}

func TestResolveSynonymPolicies(t *testing.T) {
	items := testMenu()

	item, found := NewResolver(PolicyFirstMatch).Resolve(items, "burger")
	assert.True(t, found)
	assert.Equal(t, "Chicken Burger", item.ItemName)

	item, found = NewResolver(PolicyCheapest).Resolve(items, "burger")
	assert.True(t, found)
	assert.Equal(t, "Chicken Burger", item.ItemName)

	item, found = NewResolver(PolicyHighestStock).Resolve(items, "burger")
	assert.True(t, found)
	assert.Equal(t, "Chicken Burger", item.ItemName)

	// Flip the stock so the policies diverge.
	items[1].Quantity = 50
	item, found = NewResolver(PolicyHighestStock).Resolve(items, "burger")
	assert.True(t, found)
	assert.Equal(t, "BBQ Burger", item.ItemName)
}

func TestResolveSkipsMissingCandidates(t *testing.T) {
	r := NewResolver(PolicyFirstMatch)
	items := []models.InventoryItem{
		{ItemID: "2", ItemName: "BBQ Burger", Price: 90, Quantity: 12},
	}

	// "Chicken Burger" is declared first but not stocked; resolution moves on.
	item, found := r.Resolve(items, "burger")
	assert.True(t, found)
	assert.Equal(t, "BBQ Burger", item.ItemName)
}

func TestResolveNotFoundIsAValue(t *testing.T) {
	r := NewResolver(PolicyFirstMatch)

	_, found := r.Resolve(testMenu(), "sushi")
	assert.False(t, found)

	_, found = r.Resolve(testMenu(), "   ")
	assert.False(t, found)

	_, found = r.Resolve(nil, "burger")
	assert.False(t, found)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, PolicyFirstMatch, p)

	p, err = ParsePolicy("cheapest")
	assert.NoError(t, err)
	assert.Equal(t, PolicyCheapest, p)

	_, err = ParsePolicy("random")
	assert.Error(t, err)
}

func TestTermsLongestFirst(t *testing.T) {
	r := NewResolver(PolicyFirstMatch)
	terms := r.Terms(testMenu())

	assert.Contains(t, terms, "chicken burger")
	assert.Contains(t, terms, "burger")
	for i := 1; i < len(terms); i++ {
		assert.GreaterOrEqual(t, len(terms[i-1]), len(terms[i]))
	}
}
