package inventory

import (
	"fmt"
	"sort"
	"strings"

	"khanabuddy/internal/models"
)

// Policy selects the variant when a generic spoken term matches more than
// one inventory item.
type Policy string

const (
	// PolicyFirstMatch takes the first candidate in synonym-table order.
	PolicyFirstMatch Policy = "first-match"
	// PolicyCheapest takes the lowest-priced candidate.
	PolicyCheapest Policy = "cheapest"
	// PolicyHighestStock takes the candidate with the most stock.
	PolicyHighestStock Policy = "highest-stock"
)

// ParsePolicy validates a configured policy name. Empty selects first-match.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyFirstMatch, nil
	case PolicyFirstMatch, PolicyCheapest, PolicyHighestStock:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown resolver policy %q", s)
}

// DefaultSynonyms maps generic spoken terms to the canonical inventory names
// they may refer to. Order matters under the first-match policy.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"burger":       {"Chicken Burger", "BBQ Burger"},
		"pizza":        {"Margherita Pizza"},
		"fries":        {"Fries", "Loaded Fries", "Onion Rings"},
		"garlic bread": {"Garlic Bread"},
		"beverage":     {"Coke", "Smoothie", "Milkshake"},
		"wrap":         {"Veggie Wrap"},
		"pasta":        {"Pasta"},
	}
}

// Resolver maps a free-text order-line name to an inventory item. Voice
// input is lossy and generic ("burger") while inventory holds specific
// variants ("Chicken Burger", "BBQ Burger"); resolution is a case-insensitive
// exact match first, then a declared synonym-table lookup. Not-found is a
// value, never an error.
type Resolver struct {
	policy   Policy
	synonyms map[string][]string
}

// NewResolver creates a resolver with the default synonym table
func NewResolver(policy Policy) *Resolver {
	if policy == "" {
		policy = PolicyFirstMatch
	}
	return &Resolver{policy: policy, synonyms: DefaultSynonyms()}
}

// Resolve matches name against the given inventory snapshot. The boolean is
// false when neither an exact match nor a synonym candidate exists.
func (r *Resolver) Resolve(items []models.InventoryItem, name string) (models.InventoryItem, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return models.InventoryItem{}, false
	}

	for _, it := range items {
		if strings.ToLower(it.ItemName) == needle {
			return it, true
		}
	}

	canons, ok := r.synonyms[needle]
	if !ok {
		return models.InventoryItem{}, false
	}
	var candidates []models.InventoryItem
	for _, canon := range canons {
		for _, it := range items {
			if strings.EqualFold(it.ItemName, canon) {
				candidates = append(candidates, it)
			}
		}
	}
	if len(candidates) == 0 {
		return models.InventoryItem{}, false
	}
	return r.pick(candidates), true
}

func (r *Resolver) pick(candidates []models.InventoryItem) models.InventoryItem {
	best := candidates[0]
	switch r.policy {
	case PolicyCheapest:
		for _, c := range candidates[1:] {
			if c.Price < best.Price {
				best = c
			}
		}
	case PolicyHighestStock:
		for _, c := range candidates[1:] {
			if c.Quantity > best.Quantity {
				best = c
			}
		}
	}
	return best
}

// Terms returns every phrase the resolver understands against the given
// snapshot: lowercased item names plus synonym terms, longest first so that
// multi-word phrases win when scanning free text.
func (r *Resolver) Terms(items []models.InventoryItem) []string {
	seen := make(map[string]bool)
	var terms []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	for _, it := range items {
		add(it.ItemName)
	}
	for term := range r.synonyms {
		add(term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}
