package notify

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/eventloop"
)

// IDPrefix prefixes generated notification ids
const IDPrefix = "toast-"

// MaxVisible bounds the number of notifications kept at once; the oldest is dropped
const MaxVisible = 3

// Notifier is the sink controllers report user-visible advisories to
type Notifier interface {
	Notify(kind Kind, title, message string) Notification
	Dismiss(id string) bool
}

// Center keeps the active notifications and expires them on the clock
type Center struct {
	mu        sync.Mutex
	clock     eventloop.Clock
	logger    *zap.Logger
	active    []Notification
	timers    map[string]eventloop.Timer
	translate func(string) string
	onUpdate  func([]Notification)
}

// NewCenter creates a notification center
func NewCenter(clock eventloop.Clock, logger *zap.Logger) *Center {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Center{
		clock:  clock,
		logger: logger,
		timers: make(map[string]eventloop.Timer),
	}
}

// SetTranslator sets the function used to resolve title and message keys
func (c *Center) SetTranslator(translate func(string) string) {
	c.mu.Lock()
	c.translate = translate
	c.mu.Unlock()
}

// SetUpdateCallback sets the callback invoked with the active list after each change
func (c *Center) SetUpdateCallback(callback func([]Notification)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// Notify shows a notification of the given kind
func (c *Center) Notify(kind Kind, title, message string) Notification {
	c.mu.Lock()
	if c.translate != nil {
		title = c.translate(title)
		if message != "" {
			message = c.translate(message)
		}
	}
	n := Notification{
		ID:        IDPrefix + uuid.New().String(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Duration:  kind.Duration(),
		CreatedAt: c.clock.Now(),
	}
	c.active = append(c.active, n)
	for len(c.active) > MaxVisible {
		c.dropLocked(c.active[0].ID)
	}
	if n.Duration > 0 {
		id := n.ID
		c.timers[id] = c.clock.AfterFunc(n.Duration, func() { c.Dismiss(id) })
	}
	c.mu.Unlock()

	c.logger.Debug("notification shown",
		zap.String("id", n.ID),
		zap.String("kind", kind.String()),
		zap.String("title", title),
	)
	c.notifyUpdate()
	return n
}

// Success shows a success notification
func (c *Center) Success(title, message string) Notification {
	return c.Notify(KindSuccess, title, message)
}

// Error shows an error notification
func (c *Center) Error(title, message string) Notification {
	return c.Notify(KindError, title, message)
}

// Warning shows a warning notification
func (c *Center) Warning(title, message string) Notification {
	return c.Notify(KindWarning, title, message)
}

// Info shows an informational notification
func (c *Center) Info(title, message string) Notification {
	return c.Notify(KindInfo, title, message)
}

// Loading shows a notification that stays until dismissed
func (c *Center) Loading(title, message string) Notification {
	return c.Notify(KindLoading, title, message)
}

// Dismiss removes the notification with id; returns false if it is not active
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	removed := c.dropLocked(id)
	c.mu.Unlock()
	if removed {
		c.notifyUpdate()
	}
	return removed
}

// DismissAll removes every notification
func (c *Center) DismissAll() {
	c.mu.Lock()
	for len(c.active) > 0 {
		c.dropLocked(c.active[0].ID)
	}
	c.mu.Unlock()
	c.notifyUpdate()
}

// Active returns a copy of the visible notifications, oldest first
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close cancels pending expiry timers
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

func (c *Center) dropLocked(id string) bool {
	for i, n := range c.active {
		if n.ID != id {
			continue
		}
		c.active = append(c.active[:i], c.active[i+1:]...)
		if timer, ok := c.timers[id]; ok {
			timer.Stop()
			delete(c.timers, id)
		}
		return true
	}
	return false
}

func (c *Center) notifyUpdate() {
	c.mu.Lock()
	callback := c.onUpdate
	snapshot := make([]Notification, len(c.active))
	copy(snapshot, c.active)
	c.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}
