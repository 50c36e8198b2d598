// Package notify implements the transient toast queue reporting operation
// outcomes to the operator.
//
// Toasts are presentation-only: they carry no data-correctness weight. A
// mutation pushes a loading toast, then resolves it to success or error. The
// center fans updates out to subscribers; slow subscribers are dropped rather
// than blocking the publisher.
package notify

import (
	"sync"
	"time"

	"github.com/sonatafm/podium/internal/shared"
)

// Level classifies a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelLoading Level = "loading"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is a single dismissible notification.
type Toast struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Center owns the toast queue and its subscribers.
type Center struct {
	mu          sync.Mutex
	toasts      []Toast
	subscribers map[chan Toast]struct{}
	maxRecent   int
}

// NewCenter creates a toast center retaining the given number of recent
// toasts for display.
func NewCenter(maxRecent int) *Center {
	if maxRecent <= 0 {
		maxRecent = 20
	}
	return &Center{
		subscribers: make(map[chan Toast]struct{}),
		maxRecent:   maxRecent,
	}
}

// Push adds a toast and returns its generated ID.
func (c *Center) Push(level Level, message string) string {
	toast := Toast{
		ID:      shared.GenerateID(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, toast)
	if len(c.toasts) > c.maxRecent {
		c.toasts = c.toasts[len(c.toasts)-c.maxRecent:]
	}
	c.broadcast(toast)
	c.mu.Unlock()

	return toast.ID
}

// Resolve replaces a pending toast (typically loading) with its outcome.
// Unknown IDs fall back to pushing a new toast.
func (c *Center) Resolve(id string, level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts[i].Level = level
			c.toasts[i].Message = message
			c.toasts[i].At = time.Now()
			c.broadcast(c.toasts[i])
			return
		}
	}

	toast := Toast{ID: shared.GenerateID(), Level: level, Message: message, At: time.Now()}
	c.toasts = append(c.toasts, toast)
	c.broadcast(toast)
}

// Dismiss removes a toast from the recent list.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Recent returns a copy of the retained toasts, oldest first.
func (c *Center) Recent() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Subscribe registers a channel receiving every toast update. The returned
// cancel function unregisters it.
func (c *Center) Subscribe() (<-chan Toast, func()) {
	ch := make(chan Toast, 16)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// broadcast delivers to all subscribers, dropping those whose buffers are
// full. Caller holds the lock.
func (c *Center) broadcast(toast Toast) {
	for ch := range c.subscribers {
		select {
		case ch <- toast:
		default:
			delete(c.subscribers, ch)
			close(ch)
		}
	}
}
