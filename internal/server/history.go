package server

import (
	"sync"
	"time"

	"github.com/leapstack-labs/leapcalc/internal/engine"
)

// Entry is one program run through the server.
type Entry struct {
	ID     string          `json:"id"`
	Lang   engine.Language `json:"lang"`
	Input  string          `json:"input"`
	Output string          `json:"output,omitempty"`
	Error  string          `json:"error,omitempty"`
	At     time.Time       `json:"at"`
}

// History keeps the most recent runs and pings subscribers when one is
// added. Subscribers receive an empty struct and should re-read Entries.
type History struct {
	mu        sync.RWMutex
	size      int
	entries   []Entry // oldest first
	listeners map[chan struct{}]struct{}
}

// NewHistory creates a history holding at most size entries.
func NewHistory(size int) *History {
	return &History{
		size:      size,
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Add records e, dropping the oldest entry when full, and notifies
// subscribers.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	if h.size > 0 {
		if len(h.entries) == h.size {
			copy(h.entries, h.entries[1:])
			h.entries = h.entries[:h.size-1]
		}
		h.entries = append(h.entries, e)
	}
	h.mu.Unlock()

	h.broadcast()
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, len(h.entries))
	for i, e := range h.entries {
		out[len(out)-1-i] = e
	}
	return out
}

// Subscribe returns a channel that receives a ping after each Add.
// The caller must call Unsubscribe when done.
func (h *History) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.listeners[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscription.
func (h *History) Unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.listeners, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *History) subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// broadcast never blocks: a listener with a pending ping is skipped.
func (h *History) broadcast() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
