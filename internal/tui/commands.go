package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/albumview/internal/deferred"
	"github.com/mmcdole/albumview/internal/domain"
)

// Command factories for async operations

// SubscribeCmd subscribes to a deferred payload and reports its one outcome.
// There is no timeout: the fetch is a single attempt that lasts as long as
// the transport takes.
func SubscribeCmd(d *deferred.Deferred[domain.Payload]) tea.Cmd {
	return func() tea.Msg {
		payload, err := d.Await(context.Background())
		if err != nil {
			return FetchFailedMsg{Err: err}
		}
		return AlbumsLoadedMsg{Payload: payload}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}
