// Package chat implements the order-taking assistant behind the voice/text
// chat. Speech capture and synthesis are the caller's concern; this package
// is the text contract: it parses menu phrases, maintains the per-session
// order list and produces the assistant's replies. Input the rule-based
// parser cannot handle is optionally answered by an LLM.
package chat

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"khanabuddy/internal/inventory"
)

// Greeting opens every session.
const Greeting = "Hi, What would you like to order?"

// Assistant creates and tracks chat sessions.
type Assistant struct {
	inv *inventory.Service
	llm llms.LLM // nil disables the fallback

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewAssistant creates the assistant. llm may be nil.
func NewAssistant(inv *inventory.Service, llm llms.LLM) *Assistant {
	return &Assistant{inv: inv, llm: llm, sessions: make(map[string]*Session)}
}

// Session returns the session with the given id, creating it on first use
func (a *Assistant) Session(id string) *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[id]
	if !ok {
		s = newSession(a)
		a.sessions[id] = s
	}
	return s
}

// End discards the session with the given id
func (a *Assistant) End(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
}

// fallback asks the LLM for a one-line reply when parsing found nothing.
func (a *Assistant) fallback(ctx context.Context, input string) (string, bool) {
	if a.llm == nil {
		return "", false
	}
	var names []string
	for _, it := range a.inv.Items() {
		names = append(names, it.ItemName)
	}
	prompt := "You are KhanaBuddy, a friendly restaurant order assistant. " +
		"The menu is: " + strings.Join(names, ", ") + ". " +
		"The customer said: \"" + input + "\". " +
		"Reply in one short sentence. If they seem to want food, ask them to name a menu item."
	reply, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		log.Printf("chat: llm fallback failed: %v", err)
		return "", false
	}
	reply = strings.TrimSpace(reply)
	return reply, reply != ""
}
