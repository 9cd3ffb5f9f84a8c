package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/albumview/internal/deferred"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/photoserver"
)

// Notifier shows a failure message to the user.
// Notify returns once the user has seen the message or ctx is done.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// snapshotStore records successful payloads (consumer-defined interface)
type snapshotStore interface {
	Put(url string, payload domain.Payload, at time.Time) error
}

// Fetcher retrieves album data from the photos backend.
// Every failure is normalized, shown once through the notifier and then
// returned to the subscriber as a *domain.FetchError.
type Fetcher struct {
	client    photoserver.Getter
	endpoints photoserver.Endpoints
	notifier  Notifier
	snapshots snapshotStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewFetcher creates a fetcher. snapshots may be nil.
func NewFetcher(
	client photoserver.Getter,
	endpoints photoserver.Endpoints,
	notifier Notifier,
	snapshots snapshotStore,
	logger *slog.Logger,
) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    client,
		endpoints: endpoints,
		notifier:  notifier,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// FetchAlbumList returns the deferred album list. The request is sent when
// the result is first subscribed to.
func (f *Fetcher) FetchAlbumList() *deferred.Deferred[domain.Payload] {
	url := f.endpoints.AlbumsList()
	return deferred.New(func(ctx context.Context) (domain.Payload, error) {
		return f.fetch(ctx, url)
	})
}

// FetchAlbum returns the deferred photo list of one album
func (f *Fetcher) FetchAlbum(id string) *deferred.Deferred[domain.Payload] {
	if id == "" {
		return deferred.Rejected[domain.Payload](domain.ErrAlbumIDRequired)
	}
	url := f.endpoints.Album(id)
	return deferred.New(func(ctx context.Context) (domain.Payload, error) {
		return f.fetch(ctx, url)
	})
}

// fetch performs one GET and decodes the body
func (f *Fetcher) fetch(ctx context.Context, url string) (domain.Payload, error) {
	body, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, f.fail(ctx, url, err)
	}

	var payload domain.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, f.fail(ctx, url, &domain.ApplicationError{
			Status:  http.StatusOK,
			Message: "failure during parsing: " + err.Error(),
		})
	}

	if f.snapshots != nil {
		if err := f.snapshots.Put(url, payload, f.now()); err != nil {
			f.logger.Warn("failed to save snapshot", "url", url, "error", err)
		}
	}

	return payload, nil
}

// fail normalizes err, notifies the user and returns the error for subscribers
func (f *Fetcher) fail(ctx context.Context, url string, err error) error {
	fetchErr := domain.NewFetchError(err)

	var appErr *domain.ApplicationError
	if errors.As(err, &appErr) {
		f.logger.Debug("fetch failed", "url", url, "kind", fetchErr.Kind, "status", appErr.Status)
	} else {
		f.logger.Debug("fetch failed", "url", url, "kind", fetchErr.Kind)
	}

	if f.notifier != nil {
		f.notifier.Notify(ctx, fetchErr.Text)
	}
	return fetchErr
}
