package tui

import (
	"time"

	"github.com/mmcdole/gamehub/internal/domain"
)

// maxToasts caps how many notifications are stacked on screen
const maxToasts = 4

// toast is a notification with its expiry
type toast struct {
	domain.Notification
	expires time.Time
}

// Toasts is the on-screen notification stack, newest first
type Toasts struct {
	items []toast
	ttl   time.Duration
	now   func() time.Time
}

// NewToasts creates a stack whose entries live for ttl
func NewToasts(ttl time.Duration) Toasts {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return Toasts{ttl: ttl, now: time.Now}
}

// Push adds a notification on top. Empty messages are ignored.
func (t *Toasts) Push(n domain.Notification) {
	if n.Message == "" {
		return
	}
	if n.Kind == "" {
		n.Kind = domain.NotifyInfo
	}
	entry := toast{Notification: n, expires: t.now().Add(t.ttl)}
	t.items = append([]toast{entry}, t.items...)
	if len(t.items) > maxToasts {
		t.items = t.items[:maxToasts]
	}
}

// Expire drops entries whose time is up and reports whether any were removed
func (t *Toasts) Expire() bool {
	now := t.now()
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.expires) {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(t.items)
	t.items = kept
	return removed
}

// Items returns the visible notifications, newest first
func (t Toasts) Items() []domain.Notification {
	out := make([]domain.Notification, len(t.items))
	for i, item := range t.items {
		out[i] = item.Notification
	}
	return out
}

// Len returns the number of visible notifications
func (t Toasts) Len() int {
	return len(t.items)
}
