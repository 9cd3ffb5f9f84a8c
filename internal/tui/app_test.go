package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/albumview/internal/config"
	"github.com/mmcdole/albumview/internal/deferred"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/log"
	"github.com/mmcdole/albumview/internal/photoserver"
	"github.com/mmcdole/albumview/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	d     *deferred.Deferred[domain.Payload]
	calls atomic.Int32
}

func (f *stubFetcher) FetchAlbumList() *deferred.Deferred[domain.Payload] {
	f.calls.Add(1)
	return f.d
}

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
}

// initMsg runs the subscription command returned by Init and returns its message
func initMsg(t *testing.T, m Model) tea.Msg {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "Init should batch the subscription with the spinner tick")
	require.NotEmpty(t, batch)
	return batch[0]()
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModelHoldsPlaceholder(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	assert.Equal(t, domain.PlaceholderRecord(), m.Record())
	assert.True(t, m.Loading)
}

func TestInitSubscribesOnce(t *testing.T) {
	f := &stubFetcher{d: deferred.Resolved[domain.Payload](map[string]any{"email": "a@b.com"})}
	m := NewModel(f, log.NullLogger())

	msg := initMsg(t, m)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.IsType(t, AlbumsLoadedMsg{}, msg)
}

func TestSuccessReplacesRecord(t *testing.T) {
	f := &stubFetcher{d: deferred.Resolved[domain.Payload](map[string]any{"email": "a@b.com"})}
	m := NewModel(f, log.NullLogger())

	m = update(m, initMsg(t, m))

	assert.Equal(t, domain.DisplayRecord{"email": "a@b.com"}, m.Record())
	assert.False(t, m.Loading)
}

func TestSuccessReplacesWholesale(t *testing.T) {
	f := &stubFetcher{d: deferred.Resolved[domain.Payload](map[string]any{"albums": []any{}})}
	m := NewModel(f, log.NullLogger())

	m = update(m, initMsg(t, m))

	_, hasEmail := m.Record()["email"]
	assert.False(t, hasEmail, "placeholder fields must not survive a successful fetch")
	assert.Equal(t, domain.DisplayRecord{"albums": []any{}}, m.Record())
}

func TestFailureKeepsRecord(t *testing.T) {
	f := &stubFetcher{d: deferred.Rejected[domain.Payload](&domain.FetchError{Text: "Error Code: 500\nMessage: boom"})}
	m := NewModel(f, log.NullLogger())

	msg := initMsg(t, m)
	require.IsType(t, FetchFailedMsg{}, msg)

	m = update(m, msg)
	assert.Equal(t, domain.PlaceholderRecord(), m.Record())
	assert.False(t, m.Loading)
	assert.False(t, m.Alert.IsVisible(), "the model does not raise its own alert")
}

func TestFailureAfterSuccessKeepsPreviousRecord(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	m = update(m, AlbumsLoadedMsg{Payload: map[string]any{"email": "a@b.com"}})
	m = update(m, FetchFailedMsg{Err: errors.New("Error: offline")})

	assert.Equal(t, domain.DisplayRecord{"email": "a@b.com"}, m.Record())
}

func TestAlertBlocksUntilDismissed(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	ack := make(chan struct{})
	m = update(m, AlertMsg{Text: "Error Code: 500\nMessage: boom", Ack: ack})
	require.True(t, m.Alert.IsVisible())
	assert.Contains(t, m.View(), "Message: boom")

	// Keys other than dismiss do nothing
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.True(t, m.Alert.IsVisible())
	select {
	case <-ack:
		t.Fatal("alert acknowledged before dismissal")
	default:
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Alert.IsVisible())
	select {
	case <-ack:
	default:
		t.Fatal("dismissal should acknowledge the alert")
	}
}

func TestAlertShownOverHelp(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.Equal(t, StateHelp, m.State)

	ack := make(chan struct{})
	m = update(m, AlertMsg{Text: "Error Code: 500\nMessage: boom", Ack: ack})
	assert.Contains(t, m.View(), "Message: boom", "an alert arriving during help must be drawn")
	assert.Equal(t, StateBrowsing, m.State)

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Alert.IsVisible())
	<-ack
	assert.NotContains(t, m.View(), "Message: boom")
}

func TestAlertsQueue(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	first, second := make(chan struct{}), make(chan struct{})

	m = update(m, AlertMsg{Text: "first", Ack: first})
	m = update(m, AlertMsg{Text: "second", Ack: second})
	assert.Equal(t, "first", m.Alert.Text())

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "second", m.Alert.Text())

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.Alert.IsVisible())
	<-first
	<-second
}

func TestQuitAndHelpKeys(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, StateHelp, m.State)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, StateBrowsing, m.State)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpListsBindings(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	view := m.View()
	for _, binding := range Keys.HelpBindings() {
		assert.Contains(t, view, binding.Help().Desc)
	}
}

func TestFilterKeysDoNotQuit(t *testing.T) {
	m := NewModel(&stubFetcher{}, log.NullLogger())
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, m.RecordView.IsFilterTyping())

	// "q" is typed into the filter; nothing in the placeholder matches it
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, m.RecordView.IsFilterTyping())
	assert.Empty(t, m.RecordView.Rows())

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.RecordView.IsFiltering())
	assert.Len(t, m.RecordView.Rows(), 1)
}

// Scenarios against a real HTTP server through the whole fetch path.

func newScenario(t *testing.T, handler http.HandlerFunc) (Model, *recordingNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	endpoints := photoserver.NewEndpoints(config.ServerConfig{URL: server.URL, AlbumsPath: "/photos/albumsList"})
	fetcher := service.NewFetcher(photoserver.NewClient(server.Client(), nil), endpoints, notifier, nil, log.NullLogger())
	return NewModel(fetcher, log.NullLogger()), notifier
}

func TestScenarioEmailPayload(t *testing.T) {
	m, notifier := newScenario(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"a@b.com"}`))
	})

	m = update(m, initMsg(t, m))

	assert.Equal(t, domain.DisplayRecord{"email": "a@b.com"}, m.Record())
	assert.Empty(t, notifier.texts)
}

func TestScenarioServerError(t *testing.T) {
	m, notifier := newScenario(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	m = update(m, initMsg(t, m))

	assert.Equal(t, []string{"Error Code: 500\nMessage: boom"}, notifier.texts)
	assert.Equal(t, domain.PlaceholderRecord(), m.Record())
}
