package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/albumview/internal/config"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/photoserver"
	"github.com/mmcdole/albumview/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// stubGetter returns a fixed result and counts calls
type stubGetter struct {
	body  []byte
	err   error
	calls atomic.Int32
	urls  []string
}

func (g *stubGetter) Get(_ context.Context, url string) ([]byte, error) {
	g.calls.Add(1)
	g.urls = append(g.urls, url)
	return g.body, g.err
}

func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*Fetcher, *recordingNotifier, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	endpoints := photoserver.NewEndpoints(config.ServerConfig{
		URL:        server.URL,
		AlbumsPath: "/photos/albumsList",
		AlbumPath:  "/photos/album/",
	})
	f := NewFetcher(photoserver.NewClient(server.Client(), nil), endpoints, notifier, nil, nil)
	return f, notifier, &hits
}

func TestFetchAlbumListSuccess(t *testing.T) {
	f, notifier, hits := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/albumsList", r.URL.Path)
		w.Write([]byte(`{"email":"a@b.com"}`))
	})

	d := f.FetchAlbumList()
	assert.Equal(t, int32(0), atomic.LoadInt32(hits), "request must wait for a subscriber")

	payload, err := d.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "a@b.com"}, payload)
	assert.Empty(t, notifier.Messages())
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetchAlbumListApplicationError(t *testing.T) {
	f, notifier, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := f.FetchAlbumList().Await(context.Background())

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.KindApplication, fetchErr.Kind)
	assert.Equal(t, "Error Code: 500\nMessage: boom", err.Error())
	assert.Equal(t, []string{"Error Code: 500\nMessage: boom"}, notifier.Messages())
}

func TestFetchAlbumListEnvironmentError(t *testing.T) {
	getter := &stubGetter{err: &domain.EnvironmentError{Err: errors.New("connection refused")}}
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, photoserver.NewEndpoints(config.DefaultConfig().Server), notifier, nil, nil)

	_, err := f.FetchAlbumList().Await(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Error: connection refused", err.Error())
	assert.Equal(t, []string{"Error: connection refused"}, notifier.Messages())
	assert.Equal(t, []string{"http://localhost:9090/photos/albumsList"}, getter.urls)
}

func TestFetchAlbumListConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	notifier := &recordingNotifier{}
	endpoints := photoserver.NewEndpoints(config.ServerConfig{URL: addr, AlbumsPath: "/photos/albumsList"})
	f := NewFetcher(photoserver.NewClient(nil, nil), endpoints, notifier, nil, nil)

	_, err := f.FetchAlbumList().Await(context.Background())

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, domain.KindEnvironment, fetchErr.Kind)
	assert.Regexp(t, `^Error: .*connection refused`, err.Error())
	require.Len(t, notifier.Messages(), 1)
	assert.Equal(t, err.Error(), notifier.Messages()[0])
}

func TestFetchAlbumListUndecodableBody(t *testing.T) {
	getter := &stubGetter{body: []byte("not json")}
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, photoserver.NewEndpoints(config.DefaultConfig().Server), notifier, nil, nil)

	_, err := f.FetchAlbumList().Await(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error Code: 200\nMessage: failure during parsing")
	assert.Len(t, notifier.Messages(), 1)
}

func TestNotifiesOncePerFailedFetch(t *testing.T) {
	getter := &stubGetter{err: &domain.ApplicationError{Status: 503, Message: "down"}}
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, photoserver.NewEndpoints(config.DefaultConfig().Server), notifier, nil, nil)

	d := f.FetchAlbumList()
	for i := 0; i < 3; i++ {
		_, err := d.Await(context.Background())
		require.Error(t, err)
	}
	<-d.Subscribe(context.Background(), nil, nil)

	assert.Equal(t, int32(1), getter.calls.Load())
	assert.Len(t, notifier.Messages(), 1)
}

func TestNotifyHappensBeforeRejection(t *testing.T) {
	var order []string
	var mu sync.Mutex
	getter := &stubGetter{err: &domain.ApplicationError{Status: 500, Message: "boom"}}
	notifier := notifierFunc(func(context.Context, string) {
		mu.Lock()
		order = append(order, "notify")
		mu.Unlock()
	})
	f := NewFetcher(getter, photoserver.NewEndpoints(config.DefaultConfig().Server), notifier, nil, nil)

	<-f.FetchAlbumList().Subscribe(context.Background(), nil, func(error) {
		mu.Lock()
		order = append(order, "reject")
		mu.Unlock()
	})

	assert.Equal(t, []string{"notify", "reject"}, order)
}

func TestFetchAlbum(t *testing.T) {
	f, notifier, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/album/AF1Qip", r.URL.Path)
		w.Write([]byte(`{"mediaItems":[{"id":"m1","mimeType":"image/jpeg"}]}`))
	})

	payload, err := f.FetchAlbum("AF1Qip").Await(context.Background())
	require.NoError(t, err)
	assert.Contains(t, payload.(map[string]any), "mediaItems")
	assert.Empty(t, notifier.Messages())
}

func TestFetchAlbumRequiresID(t *testing.T) {
	getter := &stubGetter{}
	notifier := &recordingNotifier{}
	f := NewFetcher(getter, photoserver.NewEndpoints(config.DefaultConfig().Server), notifier, nil, nil)

	_, err := f.FetchAlbum("").Await(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlbumIDRequired)
	assert.Equal(t, int32(0), getter.calls.Load())
	assert.Empty(t, notifier.Messages())
}

func TestSuccessfulFetchIsSnapshotted(t *testing.T) {
	snapshots, err := store.Open("")
	require.NoError(t, err)

	getter := &stubGetter{body: []byte(`{"albums":[]}`)}
	endpoints := photoserver.NewEndpoints(config.DefaultConfig().Server)
	f := NewFetcher(getter, endpoints, &recordingNotifier{}, snapshots, nil)
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return fixed }

	_, err = f.FetchAlbumList().Await(context.Background())
	require.NoError(t, err)

	snap, ok, err := snapshots.Latest(endpoints.AlbumsList())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, fixed.Equal(snap.FetchedAt))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	NewWriterNotifier(&buf).Notify(context.Background(), "Error Code: 500\nMessage: boom")
	assert.Equal(t, "Error Code: 500\nMessage: boom\n", buf.String())
}

type notifierFunc func(ctx context.Context, text string)

func (f notifierFunc) Notify(ctx context.Context, text string) { f(ctx, text) }
