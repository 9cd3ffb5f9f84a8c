package tui

import "github.com/mmcdole/albumview/internal/domain"

// Message types for the TUI

// AlbumsLoadedMsg carries the album list payload after a successful fetch
type AlbumsLoadedMsg struct {
	Payload domain.Payload
}

// FetchFailedMsg signals that the album list fetch failed.
// The user has already been notified by the time this arrives.
type FetchFailedMsg struct {
	Err error
}

// AlertMsg asks the model to show a blocking notification.
// Ack is closed when the user dismisses it.
type AlertMsg struct {
	Text string
	Ack  chan struct{}
}

// TickMsg is a general tick message for animations
type TickMsg struct{}
