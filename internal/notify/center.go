// Package notify implements the notification region: dismissible messages
// that stack in insertion order and remove themselves after a fixed TTL.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/panel-console/internal/models"
)

// DefaultTTL is how long a notification stays up unless dismissed.
const DefaultTTL = 5 * time.Second

// Notifier is what other components need to surface a message.
type Notifier interface {
	Push(kind models.NotificationKind, message string) models.Notification
}

// Listener is told about every change to the region.
type Listener interface {
	NotificationAdded(n models.Notification)
	NotificationRemoved(id string)
}

type entry struct {
	n     models.Notification
	timer *time.Timer
}

// Center is the notification region.
type Center struct {
	ttl time.Duration

	mu        sync.Mutex
	entries   []*entry
	listeners []Listener
}

// NewCenter creates a Center. A non-positive ttl selects DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Subscribe registers a listener.
func (c *Center) Subscribe(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Push appends a notification and arms its auto-dismiss timer.
func (c *Center) Push(kind models.NotificationKind, message string) models.Notification {
	now := time.Now()
	n := models.Notification{
		ID:        uuid.New().String(),
		Kind:      kind.Normalize(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	e := &entry{n: n}
	c.entries = append(c.entries, e)
	e.timer = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.NotificationAdded(n)
	}
	return n
}

// Dismiss removes a notification early. It reports whether it was present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	idx := -1
	for i, e := range c.entries {
		if e.n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.entries[idx].timer.Stop()
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.NotificationRemoved(id)
	}
	return true
}

// List returns the visible notifications, oldest first.
func (c *Center) List() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.n
	}
	return out
}

// Close stops every pending timer and clears the region.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.timer.Stop()
	}
	c.entries = nil
}
