package inventory

import "strings"

// Unavailable resolves each order-line name and returns the distinct names
// that are unresolved or out of stock. An empty result means the order is
// deliverable. Read-only; safe to call repeatedly as a delivery
// precondition.
func (s *Service) Unavailable(names []string) []string {
	items := s.Items()
	seen := make(map[string]bool)
	var unavailable []string
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		item, found := s.resolver.Resolve(items, name)
		if !found || item.OutOfStock() {
			unavailable = append(unavailable, name)
		}
	}
	return unavailable
}
