// Package notify carries transient user-facing notifications from the store
// to whatever renders them. Notifications are fire-and-expire and never
// persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	Success Severity = "success"
	Danger  Severity = "danger"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// ParseSeverity maps unknown values to Info.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Success, Danger, Warning:
		return Severity(s)
	default:
		return Info
	}
}

type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	TTL       time.Duration
	CreatedAt time.Time
}

func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.TTL)
}

func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt())
}

// Center fans notifications out to subscribers and keeps the ones that have
// not yet expired.
type Center struct {
	mu         sync.Mutex
	defaultTTL time.Duration
	now        func() time.Time
	active     []Notification
	subs       map[int]func(Notification)
	nextSub    int
}

func NewCenter(defaultTTL time.Duration) *Center {
	if defaultTTL <= 0 {
		defaultTTL = 3 * time.Second
	}
	return &Center{
		defaultTTL: defaultTTL,
		now:        time.Now,
		subs:       make(map[int]func(Notification)),
	}
}

// Add raises a notification. A non-positive ttl uses the centre default.
// Subscribers are called synchronously, outside the lock.
func (c *Center) Add(message string, severity Severity, ttl time.Duration) Notification {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  ParseSeverity(string(severity)),
		TTL:       ttl,
		CreatedAt: c.now(),
	}
	c.active = append(c.pruneLocked(n.CreatedAt), n)
	subs := make([]func(Notification), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n
}

// Subscribe registers fn for every future notification.
func (c *Center) Subscribe(fn func(Notification)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Active returns the notifications that have not expired yet, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = c.pruneLocked(c.now())
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

func (c *Center) pruneLocked(now time.Time) []Notification {
	kept := c.active[:0]
	for _, n := range c.active {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	return kept
}
