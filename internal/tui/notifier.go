package tui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// sender delivers messages into a running program (satisfied by *tea.Program)
type sender interface {
	Send(msg tea.Msg)
}

// AlertNotifier shows failures as a blocking alert in the running TUI.
// Notify waits until the user dismisses the alert, ctx is done, or the
// notifier is closed.
type AlertNotifier struct {
	mu     sync.Mutex
	target sender
	closed chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewAlertNotifier creates a notifier; Attach must be called before use
func NewAlertNotifier(logger *slog.Logger) *AlertNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertNotifier{closed: make(chan struct{}), logger: logger}
}

// Attach sets the program alerts are sent to
func (n *AlertNotifier) Attach(p sender) {
	n.mu.Lock()
	n.target = p
	n.mu.Unlock()
}

// Close releases pending and future Notify calls.
// Call it once the program has exited.
func (n *AlertNotifier) Close() {
	n.once.Do(func() { close(n.closed) })
}

// Notify shows text and blocks until it is acknowledged
func (n *AlertNotifier) Notify(ctx context.Context, text string) {
	n.mu.Lock()
	target := n.target
	n.mu.Unlock()
	if target == nil {
		n.logger.Warn("alert dropped, no program attached", "text", text)
		return
	}

	ack := make(chan struct{})
	target.Send(AlertMsg{Text: text, Ack: ack})

	select {
	case <-ack:
	case <-ctx.Done():
	case <-n.closed:
	}
}
