package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"khanabuddy/internal/models"
)

// endPhrases complete the order when they appear anywhere in the input.
var endPhrases = []string{
	"my order is done",
	"place order",
	"order done",
	"submit order",
	"finish order",
}

// quantityWords maps spoken quantities to numbers. The nN forms cover
// common speech-recognition transcriptions.
var quantityWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"a": 1, "an": 1,
	"n1": 1, "n2": 2, "n3": 3, "n4": 4, "n5": 5,
}

// line is one entry of the in-progress order, keyed by the spoken label.
type line struct {
	name string
	qty  int
}

// Session holds one customer's in-progress order.
type Session struct {
	assistant *Assistant

	mu    sync.Mutex
	lines []line
	done  bool
}

func newSession(a *Assistant) *Session {
	return &Session{assistant: a}
}

// Done reports whether the order has been placed
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Items returns the flattened order list: one entry per unit, as the
// pricing engine and stock mutator expect.
func (s *Session) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []string
	for _, l := range s.lines {
		for i := 0; i < l.qty; i++ {
			items = append(items, l.name)
		}
	}
	return items
}

// Bill prices the current order list against live inventory
func (s *Session) Bill() models.Bill {
	return s.assistant.inv.PriceOrder(s.Items())
}

// Handle processes one chat input and returns the assistant's replies in
// order.
func (s *Session) Handle(ctx context.Context, input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return []string{"I didn't understand, say again"}
	}
	if s.done {
		return []string{"Your order is already placed. Thank you!"}
	}

	for _, phrase := range endPhrases {
		if strings.Contains(lower, phrase) {
			s.done = true
			total := s.assistant.inv.PriceOrder(s.flattened()).Total
			return []string{fmt.Sprintf("Your order is placed! Total bill is ₹%s. Thank you!", formatAmount(total))}
		}
	}

	items := s.assistant.inv.Items()
	terms := s.assistant.inv.Resolver().Terms(items)

	if strings.Contains(lower, "price") {
		for _, term := range terms {
			if containsPhrase(lower, term) {
				item, found := s.assistant.inv.Resolver().Resolve(items, term)
				if !found {
					return []string{fmt.Sprintf("Sorry, %s is not available right now.", term)}
				}
				return []string{fmt.Sprintf("The price of %s is ₹%s.", term, formatAmount(item.Price))}
			}
		}
	}

	mentions := parseMentions(lower, terms)
	if len(mentions) == 0 {
		if reply, ok := s.assistant.fallback(ctx, input); ok {
			return []string{reply}
		}
		return []string{"I didn't understand, say again"}
	}

	remove := strings.Contains(lower, "remove") || strings.Contains(lower, "cancel")
	var replies []string
	for _, m := range mentions {
		if remove {
			replies = append(replies, s.removeLine(m.name, m.qty))
		} else {
			s.addLine(m.name, m.qty)
			replies = append(replies, fmt.Sprintf("%s is added", m.name))
		}
	}
	return replies
}

func (s *Session) flattened() []string {
	var items []string
	for _, l := range s.lines {
		for i := 0; i < l.qty; i++ {
			items = append(items, l.name)
		}
	}
	return items
}

func (s *Session) addLine(name string, qty int) {
	for i := range s.lines {
		if s.lines[i].name == name {
			s.lines[i].qty += qty
			return
		}
	}
	s.lines = append(s.lines, line{name: name, qty: qty})
}

func (s *Session) removeLine(name string, qty int) string {
	for i := range s.lines {
		if s.lines[i].name != name {
			continue
		}
		if qty > s.lines[i].qty {
			return fmt.Sprintf("You only have %d × %s in your order.", s.lines[i].qty, name)
		}
		s.lines[i].qty -= qty
		if s.lines[i].qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return fmt.Sprintf("%s is removed", name)
	}
	return fmt.Sprintf("You don't have any %s in your order.", name)
}

// mention is one recognized menu phrase with its requested quantity.
type mention struct {
	name string
	qty  int
}

// parseMentions scans the input for known menu phrases. Terms arrive
// longest first, so "garlic bread" wins over a shorter overlapping term;
// words already claimed by a match are not reused. The quantity comes from
// the word directly before the phrase, defaulting to one.
func parseMentions(lower string, terms []string) []mention {
	words := strings.Fields(lower)
	cleaned := make([]string, len(words))
	for i, w := range words {
		cleaned[i] = strings.Trim(w, ",.!?;:")
	}
	used := make([]bool, len(cleaned))

	var found []mention
	for _, term := range terms {
		termWords := strings.Fields(term)
		for i := 0; i+len(termWords) <= len(cleaned); i++ {
			if !matchAt(cleaned, used, termWords, i) {
				continue
			}
			for j := i; j < i+len(termWords); j++ {
				used[j] = true
			}
			qty := 1
			if i > 0 && !used[i-1] {
				if n, err := strconv.Atoi(cleaned[i-1]); err == nil && n > 0 {
					qty = n
				} else if n, ok := quantityWords[cleaned[i-1]]; ok {
					qty = n
				}
			}
			found = append(found, mention{name: term, qty: qty})
			break
		}
	}
	return found
}

func matchAt(words []string, used []bool, termWords []string, start int) bool {
	for j, tw := range termWords {
		if used[start+j] || words[start+j] != tw {
			return false
		}
	}
	return true
}

func containsPhrase(lower, phrase string) bool {
	words := strings.Fields(lower)
	cleaned := make([]string, len(words))
	for i, w := range words {
		cleaned[i] = strings.Trim(w, ",.!?;:")
	}
	termWords := strings.Fields(phrase)
	unused := make([]bool, len(cleaned))
	for i := 0; i+len(termWords) <= len(cleaned); i++ {
		if matchAt(cleaned, unused, termWords, i) {
			return true
		}
	}
	return false
}

// formatAmount renders a rupee amount without trailing zeros, matching how
// the bill is spoken back to the customer.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
