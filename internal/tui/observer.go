package tui

import "github.com/mmcdole/gamehub/internal/domain"

// ChannelNotifier adapts domain.Notifier to a channel for Bubble Tea.
type ChannelNotifier struct {
	ch chan<- domain.Notification
}

// NewChannelNotifier creates a new channel-based notifier.
func NewChannelNotifier(ch chan<- domain.Notification) *ChannelNotifier {
	return &ChannelNotifier{ch: ch}
}

// Notify sends the notification to the channel (non-blocking if full).
func (o *ChannelNotifier) Notify(n domain.Notification) {
	select {
	case o.ch <- n:
	default: // Non-blocking if channel full
	}
}
